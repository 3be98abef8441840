package agent

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

var (
	ErrNotFound         = errors.New("agent not found")
	ErrSlugTaken        = errors.New("url slug already in use")
	ErrQuestionNotFound = errors.New("custom question not found")
)

// Table: agents. url_slug is the lookup index for public links.
type Agent struct {
	ID      uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	AgentID string `gorm:"column:agent_id;size:32;not null;uniqueIndex:ux_agents_agent_id"`

	Name           string `gorm:"column:name;size:120;not null"`
	BusinessName   string `gorm:"column:business_name;size:160"`
	Email          string `gorm:"column:email;size:255;not null"`
	Phone          string `gorm:"column:phone;size:40"`
	Logo           string `gorm:"column:logo;type:text"`
	PrimaryColor   string `gorm:"column:primary_color;size:16"`
	SecondaryColor string `gorm:"column:secondary_color;size:16"`
	URLSlug        string `gorm:"column:url_slug;size:64;not null;uniqueIndex:ux_agents_url_slug"`

	Questions []CustomQuestion `gorm:"foreignKey:AgentID;references:ID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Agent) TableName() string { return "agents" }

// Table: custom_questions, ordered per agent by position.
type CustomQuestion struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier referenced by application answers
	QuestionID string `gorm:"column:question_id;size:32;not null;uniqueIndex:ux_questions_question_id"`
	// FK to agents.id (numeric)
	AgentID      uint64                      `gorm:"column:agent_id;not null;index:idx_questions_agent_position"`
	Position     int                         `gorm:"column:position;not null;index:idx_questions_agent_position"`
	QuestionText string                      `gorm:"column:question_text;type:text;not null"`
	Required     bool                        `gorm:"column:required;not null;default:false"`
	Type         QuestionType                `gorm:"column:type;size:16;not null"`
	Options      datatypes.JSONSlice[string] `gorm:"column:options"`
	CreatedAt    time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}

func (CustomQuestion) TableName() string { return "custom_questions" }

// Question returns the agent's question with the given public id.
func (a *Agent) Question(questionID string) (*CustomQuestion, bool) {
	for i := range a.Questions {
		if a.Questions[i].QuestionID == questionID {
			return &a.Questions[i], true
		}
	}
	return nil, false
}
