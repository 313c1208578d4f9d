package user

import (
	"strings"
	"time"
)

// User é um usuário interno do painel (atendente ou administrador).
type User struct {
	ID           string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Username     string    `gorm:"column:username;type:varchar(64);uniqueIndex;not null" json:"username"`
	Name         string    `gorm:"column:nome;type:varchar(120)" json:"nome"`
	Email        string    `gorm:"column:email;type:varchar(128)" json:"email,omitempty"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(128);not null" json:"-"`
	PasswordSalt string    `gorm:"column:password_salt;type:varchar(64);not null" json:"-"`
	Roles        string    `gorm:"column:roles;type:varchar(256);not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "usuarios"
}

// RolesSlice separa a lista de papéis guardada como string com vírgulas.
func (u User) RolesSlice() []string {
	if strings.TrimSpace(u.Roles) == "" {
		return nil
	}
	parts := strings.Split(u.Roles, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func RolesJoin(roles []string) string {
	if len(roles) == 0 {
		return ""
	}
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	return strings.Join(out, ",")
}
