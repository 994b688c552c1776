// Package entity defines the domain entities for the resources feature.
package entity

import "time"

// ResourceType is the kind of learning material.
type ResourceType string

const (
	TypeArticle ResourceType = "Article"
	TypeVideo   ResourceType = "Video"
	TypeQuiz    ResourceType = "Quiz"
	TypeBook    ResourceType = "Book"
	TypeCourse  ResourceType = "Course"
)

// ResourceTypes returns every valid resource type.
func ResourceTypes() []ResourceType {
	return []ResourceType{TypeArticle, TypeVideo, TypeQuiz, TypeBook, TypeCourse}
}

// Valid reports whether t is one of the known types.
func (t ResourceType) Valid() bool {
	for _, v := range ResourceTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// Category groups a user's resources. Names are unique per owner.
type Category struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:255;not null;uniqueIndex:idx_categories_owner_name"`
	CreatedBy string `gorm:"size:36;not null;uniqueIndex:idx_categories_owner_name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Resource is a learning item tracked by a user.
type Resource struct {
	ID            string       `gorm:"primaryKey;size:36"`
	Title         string       `gorm:"size:255;not null"`
	Type          ResourceType `gorm:"size:16;not null"`
	Description   string       `gorm:"type:text"`
	CategoryID    string       `gorm:"size:36;not null;index"`
	Category      *Category    `gorm:"foreignKey:CategoryID"`
	UserID        string       `gorm:"size:36;not null;index"`
	EstimatedTime int          `gorm:"not null;default:0"` // minutes
	IsCompleted   bool         `gorm:"not null;default:false"`
	CompletedAt   *time.Time
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time

	// ActualTimeSpent is read from the resource's progress log.
	ActualTimeSpent int `gorm:"-"`
}

// ProgressStatus is the state recorded in a progress log.
type ProgressStatus string

const (
	StatusStarted    ProgressStatus = "started"
	StatusInProgress ProgressStatus = "in-progress"
	StatusCompleted  ProgressStatus = "completed"
)

// ProgressLog records a user's time on one resource. There is at most one per (resource, user).
type ProgressLog struct {
	ID               string         `gorm:"primaryKey;size:36"`
	ResourceID       string         `gorm:"size:36;not null;uniqueIndex:idx_progress_resource_user"`
	UserID           string         `gorm:"size:36;not null;uniqueIndex:idx_progress_resource_user"`
	CompletionStatus ProgressStatus `gorm:"size:16;not null;default:started"`
	TimeSpent        int            `gorm:"not null;default:0"` // minutes
	CompletionDate   *time.Time
	Notes            string `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CategoryStat is the completion summary of one category.
type CategoryStat struct {
	Name                 string
	Total                int
	Completed            int
	CompletionPercentage int
}

// Summary aggregates a user's progress.
type Summary struct {
	TotalResources     int
	CompletedResources int
	TotalTimeSpent     int // hours, rounded
	CategoryStats      []CategoryStat
}
