package models

import "time"

// Admin 管理员表
type Admin struct {
	ID           uint       `gorm:"primarykey" json:"id"`                         // 主键
	Username     string     `gorm:"uniqueIndex;size:64;not null" json:"username"` // 管理员账号
	PasswordHash string     `gorm:"not null" json:"-"`                            // 密码哈希（不返回给前端）
	TokenVersion uint64     `gorm:"not null;default:0" json:"-"`                  // Token 版本（改密后旧 Token 失效）
	IsSuper      bool       `gorm:"not null;default:false" json:"is_super"`       // 是否超级管理员（免权限校验）
	LastLoginAt  *time.Time `json:"last_login_at"`                                // 最后登录时间
	CreatedAt    time.Time  `json:"created_at"`                                   // 创建时间
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}
