package models

// Tag 标签
type Tag struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Label string `gorm:"size:255;not null;uniqueIndex" json:"label"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

// TaggedItem 标签与任意对象的多态关联
type TaggedItem struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	TagID      uint   `gorm:"not null;uniqueIndex:idx_tagged_item" json:"tag_id"`                                      // 随标签级联删除
	ObjectType string `gorm:"size:32;not null;uniqueIndex:idx_tagged_item;index:idx_tagged_object" json:"object_type"` // 对象类型
	ObjectID   uint   `gorm:"not null;uniqueIndex:idx_tagged_item;index:idx_tagged_object" json:"object_id"`           // 对象ID

	Tag *Tag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"tag,omitempty"`
}

// TableName 指定表名
func (TaggedItem) TableName() string {
	return "tagged_items"
}
