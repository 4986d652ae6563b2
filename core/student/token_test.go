package student

import (
	"strings"
	"testing"

	"github.com/trezcool/zoezi/core"
)

func TestMakeVerifyToken(t *testing.T) {
	core.Conf.SecretKey = []byte("k")

	for _, id := range []int{0, 1, 42, 1234567} {
		got, err := VerifyToken(MakeToken(id))
		if err != nil {
			t.Errorf("VerifyToken(MakeToken(%d)) error = %v", id, err)
		}
		if got != id {
			t.Errorf("VerifyToken(MakeToken(%d)) = %d", id, got)
		}
	}

	validToken := MakeToken(42)
	tamperedSig := validToken[:len(validToken)-1] + flipLastChar(validToken)
	tamperedSub := "43." + strings.SplitN(validToken, ".", 2)[1]

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "no token", wantErr: ErrTokenMalformed},
		{name: "no dot", token: "42", wantErr: ErrTokenMalformed},
		{name: "two dots", token: "42.sig.sig", wantErr: ErrTokenMalformed},
		{name: "subject not a number", token: "lol.sig", wantErr: ErrInvalidSubject},
		{name: "negative subject", token: "-1.sig", wantErr: ErrInvalidSubject},
		{name: "signature not base64url", token: "42.???!", wantErr: ErrInvalidSignature},
		{name: "tampered signature", token: tamperedSig, wantErr: ErrInvalidSignature},
		{name: "tampered subject", token: tamperedSub, wantErr: ErrInvalidSignature},
		{name: "valid token", token: validToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := VerifyToken(tt.token); err != tt.wantErr {
				t.Errorf("VerifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyTokenDifferentKey(t *testing.T) {
	core.Conf.SecretKey = []byte("k")
	token := MakeToken(42)

	core.Conf.SecretKey = []byte("different-key")
	if _, err := VerifyToken(token); err != ErrInvalidSignature {
		t.Errorf("VerifyToken() error = %v, wantErr %v", err, ErrInvalidSignature)
	}

	core.Conf.SecretKey = []byte("k")
	if id, err := VerifyToken(token); err != nil || id != 42 {
		t.Errorf("VerifyToken() = %d, %v; want 42, nil", id, err)
	}
}

func flipLastChar(token string) string {
	if strings.HasSuffix(token, "A") {
		return "B"
	}
	return "A"
}
