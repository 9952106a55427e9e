package dto

import "time"

// StageCount conteos de un flujo a lo largo del pipeline.
type StageCount struct {
	Read      int `json:"read"`
	Kept      int `json:"kept"`
	Dropped   int `json:"dropped"`
	Orphans   int `json:"orphans"`
	Conflicts int `json:"conflicts"`
}

// RunSummary resultado de una ejecución del pipeline.
type RunSummary struct {
	RunID           string     `json:"run_id"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      time.Time  `json:"finished_at"`
	DryRun          bool       `json:"dry_run"`
	Materials       StageCount `json:"materials"`
	Stock           StageCount `json:"stock"`
	Repairs         StageCount `json:"repairs"`
	Aggregates      int        `json:"aggregates"`
	FirstBucket     string     `json:"first_bucket,omitempty"`
	LastBucket      string     `json:"last_bucket,omitempty"`
	Tables          []string   `json:"tables"`
	Files           []string   `json:"files"`
	Classifications int        `json:"classifications"`
}
