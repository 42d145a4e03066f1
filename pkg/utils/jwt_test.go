package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestDecodeJWT(t *testing.T) {
	secret := []byte("secret")

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": "e2a1f0aa-3c55-4ce8-9d0c-6a1b3f1e8a77",
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	claims, err := DecodeJWT(token, secret)
	if err != nil {
		t.Fatalf("DecodeJWT error: %v", err)
	}
	if claims["id"] != "e2a1f0aa-3c55-4ce8-9d0c-6a1b3f1e8a77" {
		t.Fatalf("claims id = %v, want the signed value", claims["id"])
	}
}

func TestDecodeJWT_WrongSecret(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": "whoever",
	}).SignedString([]byte("right"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := DecodeJWT(token, []byte("wrong")); err == nil {
		t.Fatal("DecodeJWT accepted a token signed with another secret")
	}
}

func TestDecodeJWT_Malformed(t *testing.T) {
	if _, err := DecodeJWT("not.a.token", []byte("secret")); err == nil {
		t.Fatal("DecodeJWT accepted a malformed token")
	}
}
