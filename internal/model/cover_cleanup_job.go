package model

// CoverCleanupJob is the pgmq payload asking the orchestrator to remove a
// course cover from object storage.
type CoverCleanupJob struct {
	CourseID string `json:"courseId"`
	CoverKey string `json:"coverKey"`
}
