package models

// CommitAuthor identifies the author of a pushed commit.
type CommitAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Commit is one commit record from a push payload.
type Commit struct {
	Id       string       `json:"id"`
	Message  string       `json:"message"`
	Author   CommitAuthor `json:"author"`
	Added    []string     `json:"added"`
	Modified []string     `json:"modified"`
	Removed  []string     `json:"removed"`
}

// PushEvent is the decoded webhook body. fileContents is an out-of-band
// addition: the register has no repository-fetch capability of its own, so
// the caller supplies the raw text for every changed path.
type PushEvent struct {
	Ref          string            `json:"ref"`
	Repository   string            `json:"repository"`
	Pusher       string            `json:"pusher"`
	Commits      []Commit          `json:"commits"`
	FileContents map[string]string `json:"fileContents"`
}

// SyncStats tallies one orchestration run.
type SyncStats struct {
	Processed int `json:"processed"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Deleted   int `json:"deleted"`
	Failed    int `json:"failed"`
}

// SyncFileError records a per-file soft failure.
type SyncFileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// SyncResult is the outcome of a single webhook-triggered run. It is never
// persisted; it only lives for the duration of the request.
type SyncResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Stats   SyncStats       `json:"stats"`
	Errors  []SyncFileError `json:"errors,omitempty"`
}
