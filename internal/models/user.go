package models

import "time"

// User 登录身份
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                            // 主键
	Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`      // 邮箱
	PasswordHash string     `gorm:"not null" json:"-"`                               // 密码哈希（不返回给前端）
	FirstName    string     `gorm:"size:255;not null;default:''" json:"first_name"`  // 名
	LastName     string     `gorm:"size:255;not null;default:''" json:"last_name"`   // 姓
	Status       string     `gorm:"size:20;not null;default:'active'" json:"status"` // 账号状态
	TokenVersion uint64     `gorm:"not null;default:0" json:"-"`                     // Token 版本
	LastLoginAt  *time.Time `json:"last_login_at"`                                   // 最后登录时间
	CreatedAt    time.Time  `json:"created_at"`                                      // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                                      // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
