package greenhouse

// Job statuses and opening statuses used by the public board filters.
const (
	JobStatusOpen     = "open"
	OpeningStatusOpen = "open"
)

// Department is a named grouping a job belongs to. Jobs carry zero or more.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Location carries the optional display name of an office location.
type Location struct {
	Name string `json:"name"`
}

// Office describes a physical location attached to a job.
type Office struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Location *Location `json:"location,omitempty"`
}

// Opening is a single fillable headcount slot under a job requisition. A job
// may have several and only some of them "open".
type Opening struct {
	ID            int64   `json:"id"`
	OpeningID     *string `json:"opening_id,omitempty"`
	Status        string  `json:"status"`
	OpenedAt      string  `json:"opened_at,omitempty"`
	ClosedAt      *string `json:"closed_at,omitempty"`
	ApplicationID *int64  `json:"application_id,omitempty"`
}

// SalaryRange is an optional custom field describing compensation.
type SalaryRange struct {
	MinValue string `json:"min_value"`
	MaxValue string `json:"max_value"`
	Unit     string `json:"unit"`
}

// CustomFields holds the subset of job custom fields the board surfaces.
type CustomFields struct {
	EmploymentType string       `json:"employment_type,omitempty"`
	SalaryRange    *SalaryRange `json:"salary_range,omitempty"`
}

// QuestionValue is one enumerated choice of a select-type question. Upstream
// sends numeric values; consumers coerce them to strings for form controls.
type QuestionValue struct {
	Value any    `json:"value"`
	Label string `json:"label"`
}

// Question is the wire shape of one application-form field descriptor.
type Question struct {
	Required    *bool           `json:"required"`
	Private     bool            `json:"private"`
	Label       string          `json:"label"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Values      []QuestionValue `json:"values"`
	Description *string         `json:"description"`
}

// Job is the upstream job record. Content and Questions may be absent; the
// question adapter supplies fallbacks.
type Job struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	RequisitionID string        `json:"requisition_id,omitempty"`
	Status        string        `json:"status"`
	Confidential  bool          `json:"confidential"`
	CreatedAt     string        `json:"created_at,omitempty"`
	OpenedAt      string        `json:"opened_at,omitempty"`
	Departments   []Department  `json:"departments"`
	Offices       []Office      `json:"offices"`
	Openings      []Opening     `json:"openings"`
	CustomFields  *CustomFields `json:"custom_fields,omitempty"`
	Content       string        `json:"content,omitempty"`
	Questions     []Question    `json:"questions,omitempty"`
}

// HasOpenOpening reports whether at least one opening is still open.
func (j Job) HasOpenOpening() bool {
	for _, opening := range j.Openings {
		if opening.Status == OpeningStatusOpen {
			return true
		}
	}
	return false
}

// PubliclyVisible reports whether a job may appear on the public board: open,
// not confidential, and with at least one open opening.
func (j Job) PubliclyVisible() bool {
	return j.Status == JobStatusOpen && !j.Confidential && j.HasOpenOpening()
}

// JobPost is the optional richer content/questions overlay for a job. The
// first active post wins, else the first post.
type JobPost struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Location  string     `json:"location,omitempty"`
	Content   string     `json:"content"`
	UpdatedAt string     `json:"updated_at,omitempty"`
	Active    bool       `json:"active"`
	Questions []Question `json:"questions"`
}

// UserPermissions is the subset of user permissions the board cares about.
type UserPermissions struct {
	CanCreatePrivateTags bool `json:"can_create_private_tags"`
	CanEmailCandidates   bool `json:"can_email_candidates"`
}

// User is an upstream account record, used only as the On-Behalf-Of identity.
type User struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	EmployeeID  string          `json:"employee_id,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
	Disabled    bool            `json:"disabled"`
	Permissions UserPermissions `json:"permissions"`
}

// EmailAddress tags an address with its kind ("personal", "work").
type EmailAddress struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// PhoneNumber tags a number with its kind ("mobile", "home").
type PhoneNumber struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// ApplicationEntry ties a candidate to a job requisition.
type ApplicationEntry struct {
	JobID int64 `json:"job_id"`
}

// Attachment is the JSON-safe envelope for binary payloads sent alongside a
// candidate. Content is base64-encoded.
type Attachment struct {
	Filename    string `json:"filename"`
	Type        string `json:"type"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

// CandidateRequest is the candidate-creation body expected by POST /candidates.
// EmailAddresses is always present (possibly empty); PhoneNumbers is omitted
// entirely when no phone was provided.
type CandidateRequest struct {
	FirstName      string             `json:"first_name"`
	LastName       string             `json:"last_name"`
	EmailAddresses []EmailAddress     `json:"email_addresses"`
	PhoneNumbers   []PhoneNumber      `json:"phone_numbers,omitempty"`
	Applications   []ApplicationEntry `json:"applications"`
	Attachments    []Attachment       `json:"attachments"`
}

// CandidateApplication is one application entry in the creation response.
type CandidateApplication struct {
	ID           int64  `json:"id"`
	Status       string `json:"status,omitempty"`
	CurrentStage *struct {
		Name string `json:"name"`
	} `json:"current_stage,omitempty"`
}

// Candidate is the candidate-creation response.
type Candidate struct {
	ID             int64                  `json:"id"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	EmailAddresses []EmailAddress         `json:"email_addresses"`
	Applications   []CandidateApplication `json:"applications"`
}
