package models

// Customer 顾客档案，与登录身份一对一
type Customer struct {
	ID         uint   `gorm:"primarykey" json:"id"`                                // 主键
	UserID     uint   `gorm:"uniqueIndex;not null" json:"user_id"`                 // 登录身份ID
	Phone      string `gorm:"size:255;not null;default:''" json:"phone"`           // 电话
	BirthDate  *Date  `gorm:"type:date" json:"birth_date"`                         // 生日
	Membership string `gorm:"size:1;not null;default:'B';index" json:"membership"` // 会员等级 B/S/G

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"` // 登录身份
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}

// Address 顾客地址，随顾客级联删除
type Address struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	Street     string `gorm:"size:255;not null" json:"street"`
	City       string `gorm:"size:255;not null" json:"city"`
	CustomerID uint   `gorm:"not null;index" json:"customer_id"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
