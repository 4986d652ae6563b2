package tests

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/trezcool/zoezi/core/student"
)

func Test_studentApi_logIn(t *testing.T) {
	logIn := func(username, password string) []byte {
		return marchallObj(t, map[string]string{"username": username, "password": password})
	}

	tests := []httpTest{
		{
			name: "ok", method: http.MethodPost, path: "/log-in", body: logIn("asha", "the-class-password"),
			wantData: marchallObj(t, student.MakeToken(asha.ID)),
		},
		{
			name: "username is cleaned", method: http.MethodPost, path: "/log-in", body: logIn("  Asha ", "the-class-password"),
			wantData: marchallObj(t, student.MakeToken(asha.ID)),
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/log-in", body: logIn("asha", "nope"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errAuthFailed),
		},
		{
			name: "unknown username", method: http.MethodPost, path: "/log-in", body: logIn("nobody", "the-class-password"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errAuthFailed),
		},
		{
			name: "missing fields", method: http.MethodPost, path: "/log-in", body: marchallObj(t, map[string]string{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"username": "this field is required", "password": "this field is required"}),
		},
		{
			name: "invalid JSON", method: http.MethodPost, path: "/log-in", body: []byte("{oops"),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "oversized body", method: http.MethodPost, path: "/log-in",
			body:     bytes.Repeat([]byte("a"), 2<<10),
			wantCode: http.StatusRequestEntityTooLarge,
		},
	}
	runTable(t, tests)
}

func Test_studentApi_me(t *testing.T) {
	tests := []httpTest{
		{name: "ok", path: "/students/me", token: student.MakeToken(asha.ID), wantData: marchallObj(t, asha)},
		{name: "other student", path: "/students/me", token: student.MakeToken(baraka.ID), wantData: marchallObj(t, baraka)},
		{
			name: "auth required", path: "/students/me",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errAuthRequired),
		},
		{
			name: "malformed token", path: "/students/me", token: "garbage",
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
		{
			name: "tampered signature", path: "/students/me", token: "1.AAAA",
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
		{
			name: "tampered subject", path: "/students/me", token: "2" + student.MakeToken(asha.ID)[1:],
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
		{
			name: "valid token for unknown student", path: "/students/me", token: student.MakeToken(99),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errAuthRequired),
		},
	}
	runTable(t, tests)
}
