package models

import (
	"errors"
	"strings"

	"github.com/storefront-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultAdminPassword = "admin123"

// InitDefaultAdmin 初始化默认管理员账号，已有管理员时仅确保默认账号为超级管理员
func InitDefaultAdmin(db *gorm.DB, username, password string) error {
	if db == nil {
		return errors.New("database not initialized")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		username = "admin"
	}

	var count int64
	if err := db.Model(&Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		if err := db.Model(&Admin{}).Where("username = ?", username).Update("is_super", true).Error; err != nil {
			logger.Warnw("ensure_default_admin_super_failed", "username", username, "error", err)
		}
		return nil
	}

	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := Admin{
		Username:     username,
		PasswordHash: string(hash),
		IsSuper:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
	} else {
		logger.Infow("default_admin_created", "username", username)
	}
	return nil
}
