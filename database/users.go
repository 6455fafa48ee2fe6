package database

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"regexp"

	"cqms/config"
	"cqms/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AddUser inserts a new account with a bcrypt-hashed password. An existing
// username is left untouched (no error, no rehash).
func AddUser(db *gorm.DB, username, password, role string) error {
	if err := db.Where("username = ?", username).First(&models.User{}).Error; err == nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password for %s: %v", username, err)
		return err
	}

	user := models.User{
		Username:       username,
		HashedPassword: string(hashed),
		Role:           role,
	}
	return db.Create(&user).Error
}

// SeedDefaultUsers creates the two built-in accounts.
func SeedDefaultUsers(db *gorm.DB) error {
	if err := AddUser(db, "support", "support123", models.RoleSupport); err != nil {
		return err
	}
	return AddUser(db, "client", "client123", models.RoleClient)
}

// AuthenticateUser verifies a role/username/password triple against the
// users table. The role must match the stored account exactly.
func AuthenticateUser(db *gorm.DB, role, username, password string) bool {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return false
	}
	if user.Role != role {
		return false
	}
	return verifyPassword(user.HashedPassword, password)
}

// LookupRole resolves the role for a username/password pair, for logins
// that do not state a role up front.
func LookupRole(db *gorm.DB, username, password string) (string, bool) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return "", false
	}
	if !verifyPassword(user.HashedPassword, password) {
		return "", false
	}
	return user.Role, true
}

var hexDigestRe = regexp.MustCompile(`^[0-9a-f]{64}$`)

// verifyPassword compares a password against a stored hash. Accounts
// imported from the previous system carry plain sha256 hex digests; new
// accounts use bcrypt.
func verifyPassword(stored, password string) bool {
	if hexDigestRe.MatchString(stored) {
		sum := sha256.Sum256([]byte(password))
		digest := hex.EncodeToString(sum[:])
		return subtle.ConstantTimeCompare([]byte(stored), []byte(digest)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
