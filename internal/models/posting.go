package models

// JobPosting is created outside the portal and only read here.
type JobPosting struct {
	JobID          string    `gorm:"column:job_id;type:text;primaryKey" json:"job_id"`
	Title          string    `gorm:"type:text;not null" json:"title"`
	RequiredSkills SkillList `gorm:"column:required_skills;type:text;not null" json:"required_skills"`
}

func (JobPosting) TableName() string {
	return "job_offers"
}

type PostingSummary struct {
	JobID string `json:"job_id"`
	Title string `json:"title"`
}
