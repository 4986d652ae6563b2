package student

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"

	"github.com/trezcool/zoezi/core"
)

var (
	// errors
	ErrTokenMalformed   = errors.New("malformed token")
	ErrInvalidSubject   = errors.New("invalid token subject")
	ErrInvalidSignature = errors.New("invalid token signature")
)

// MakeToken generates a bearer token for a given student ID:
// "<id>.<base64url(HMAC-SHA256(secret, id))>". The token carries no state and
// no expiry; possession of a valid signature is the whole credential.
func MakeToken(id int) string {
	sub := strconv.Itoa(id)
	return sub + "." + base64.RawURLEncoding.EncodeToString(sign(sub))
}

// VerifyToken checks that a bearer token has not been tampered with and
// returns the student ID it was issued for. It authenticates the subject only;
// callers must still check that the student exists.
func VerifyToken(token string) (int, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return 0, ErrTokenMalformed
	}

	id, err := strconv.Atoi(parts[0])
	if err != nil || id < 0 {
		return 0, ErrInvalidSubject
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return 0, ErrInvalidSignature
	}

	// check that token has not been tampered with
	if subtle.ConstantTimeCompare(sig, sign(parts[0])) == 0 {
		return 0, ErrInvalidSignature
	}
	return id, nil
}

func sign(sub string) []byte {
	h := hmac.New(sha256.New, core.Conf.SecretKey)
	h.Write([]byte(sub))
	return h.Sum(nil)
}
