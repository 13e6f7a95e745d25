package jwt

import (
	"Inventory/models"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupKeys(t *testing.T) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private_key.pem")
	pubPath := filepath.Join(dir, "public_key.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	})

	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0600))

	oldPriv, oldPub := PrivateKeyPath, PublicKeyPath
	PrivateKeyPath, PublicKeyPath = privPath, pubPath
	t.Cleanup(func() {
		PrivateKeyPath, PublicKeyPath = oldPriv, oldPub
	})
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LoginToken{}))
	return db
}

func TestGenerateAndVerifyToken(t *testing.T) {
	setupKeys(t)
	db := setupDB(t)

	expTime := time.Now().Add(time.Hour)
	token, err := GenerateToken(42, "staff", expTime.Unix())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	loginToken := models.LoginToken{
		Token:          token,
		ExpirationTime: expTime,
		UserID:         42,
		Role:           "staff",
	}
	require.NoError(t, db.Create(&loginToken).Error)

	userID, role, err := VerifyToken(&token, db)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, "staff", role)
}

func TestVerifyRevokedToken(t *testing.T) {
	setupKeys(t)
	db := setupDB(t)

	token, err := GenerateToken(42, "user", time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	// No login_tokens row: the token has been revoked (or never issued).
	_, _, err = VerifyToken(&token, db)
	assert.Error(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	setupKeys(t)
	db := setupDB(t)

	token, err := GenerateToken(42, "user", time.Now().Add(-time.Hour).Unix())
	require.NoError(t, err)

	_, _, err = VerifyToken(&token, db)
	assert.Error(t, err)
}

func TestVerifyGarbageToken(t *testing.T) {
	setupKeys(t)
	db := setupDB(t)

	garbage := "not.a.token"
	_, _, err := VerifyToken(&garbage, db)
	assert.Error(t, err)
}
