package service

import (
	"webchat/internal/models"

	"gorm.io/gorm"
)

// MessageService 封装消息相关的业务逻辑。
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// MessageView 是联表之后对外输出的消息数据。
type MessageView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Body        string `json:"message"`
	DateCreated string `json:"dateSent"`
}

// Save 持久化一条消息，DateSent 原样存储客户端给的时间字符串。
func (s *MessageService) Save(userID uint, body, dateSent string) (*models.Message, error) {
	msg := models.Message{UserID: userID, Body: body, DateCreated: dateSent}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListAll 返回全部消息并联出作者名，按 id 升序。
func (s *MessageService) ListAll() ([]MessageView, error) {
	var out []MessageView
	err := s.db.Model(&models.Message{}).
		Select("messages.id, users.name, messages.body, messages.date_created").
		Joins("JOIN users ON users.id = messages.user_id").
		Order("messages.id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByAuthor 先取全量联表结果，再在内存里按作者名过滤。
// 消息量大了之后这是一处线性扫描的瓶颈。
func (s *MessageService) ListByAuthor(name string) ([]MessageView, error) {
	all, err := s.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]MessageView, 0, len(all))
	for _, m := range all {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out, nil
}
