package models

import "time"

// User 只有展示名，没有密码；首次登录时创建，之后不再修改。
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:40;not null"`
	CreatedAt time.Time
}

// Message 的 DateCreated 是客户端上报的发送时间字符串，服务端不生成业务时间戳。
type Message struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	Body        string `gorm:"type:text;not null"`
	DateCreated string `gorm:"not null"`
	CreatedAt   time.Time
}
