// internal/domain/goal/entity.go
package goal

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Defaults for new goals
const (
	DefaultCategory = "Personal"
	DefaultColor    = "neo-cyan"
)

// Goal is a wellness goal tracked as progress out of total
type Goal struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:64;not null;index" json:"user_id"`
	Goal      string    `gorm:"size:255;not null" json:"goal"`
	Progress  int       `gorm:"not null;default:0" json:"progress"`
	Total     int       `gorm:"not null" json:"total"`
	Category  string    `gorm:"size:64;not null" json:"category"`
	Deadline  *string   `gorm:"size:32" json:"deadline"`
	Color     string    `gorm:"size:32;not null" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Goal) TableName() string {
	return "goals"
}

// Percent returns progress as a whole percentage
func (g *Goal) Percent() int {
	if g.Total <= 0 {
		return 0
	}
	return g.Progress * 100 / g.Total
}

// Count is an integer that also accepts numeric strings such as "10"
type Count int

// UnmarshalJSON implements json.Unmarshaler
func (c *Count) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("count must be a number")
		}
		n = json.Number(strings.TrimSpace(s))
	}
	if n == "" {
		*c = 0
		return nil
	}
	if i, err := strconv.Atoi(string(n)); err == nil {
		*c = Count(i)
		return nil
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return fmt.Errorf("count must be a number")
	}
	*c = Count(int(f))
	return nil
}
