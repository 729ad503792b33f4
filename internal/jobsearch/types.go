package jobsearch

import (
	"github.com/go-playground/validator/v10"
	"github.com/jonathan/lifehub/internal/storage"
)

// Job posting lifecycle statuses.
const (
	PostingStatusSaved      = "saved"
	PostingStatusInterested = "interested"
	PostingStatusApplied    = "applied"
	PostingStatusArchived   = "archived"
)

// Application statuses. The set moves forward through the funnel; transitions
// are a caller convention, not schema-enforced.
const (
	AppStatusInterested = "interested"
	AppStatusApplied    = "applied"
	AppStatusCallback   = "callback-received"
	AppStatusInterview  = "interview"
	AppStatusOffer      = "offer"
	AppStatusRejected   = "rejected"
	AppStatusAccepted   = "accepted"
)

// JobPosting is a tracked job listing. Timestamps and dates are stored as
// SQLite text (DATETIME / DATE) and surfaced unparsed.
type JobPosting struct {
	ID                int64    `json:"id"`
	Title             string   `json:"title"`
	Company           string   `json:"company"`
	Location          *string  `json:"location,omitempty"`
	SalaryMin         *float64 `json:"salary_min,omitempty"`
	SalaryMax         *float64 `json:"salary_max,omitempty"`
	Description       *string  `json:"description,omitempty"`
	URL               *string  `json:"url,omitempty"`
	Provider          *string  `json:"provider,omitempty"`
	Status            string   `json:"status"`
	AIAnalysis        *string  `json:"ai_analysis,omitempty"`
	FitScore          *int     `json:"fit_score,omitempty"`
	RecruiterName     *string  `json:"recruiter_name,omitempty"`
	RecruiterEmail    *string  `json:"recruiter_email,omitempty"`
	RecruiterPhone    *string  `json:"recruiter_phone,omitempty"`
	RecruiterLinkedIn *string  `json:"recruiter_linkedin,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// JobPostingCreateInput holds the fields accepted on posting creation.
type JobPostingCreateInput struct {
	Title             string   `validate:"required,min=1"`
	Company           string   `validate:"required,min=1"`
	Location          *string  `validate:"-"`
	SalaryMin         *float64 `validate:"-"`
	SalaryMax         *float64 `validate:"-"`
	Description       *string  `validate:"-"`
	URL               *string  `validate:"-"`
	Provider          *string  `validate:"-"`
	RecruiterName     *string  `validate:"-"`
	RecruiterEmail    *string  `validate:"omitempty,email"`
	RecruiterPhone    *string  `validate:"-"`
	RecruiterLinkedIn *string  `validate:"-"`
}

// Validate checks the input at the repository boundary. The salary bounds
// are each optional; ordering is enforced only when both are present.
func (in *JobPostingCreateInput) Validate() error {
	validate := validator.New()
	if err := storage.NewValidationError(validate.Struct(in)); err != nil {
		return err
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMax < *in.SalaryMin {
		return &storage.ValidationError{Fields: []storage.FieldError{
			{Field: "SalaryMax", Message: "must not be below SalaryMin"},
		}}
	}
	return nil
}

// JobPostingUpdate is a sparse update; nil fields are left untouched.
// Columns come from the fixed mapping in assignments, never from callers.
type JobPostingUpdate struct {
	Title             *string
	Company           *string
	Location          *string
	SalaryMin         *float64
	SalaryMax         *float64
	Description       *string
	URL               *string
	Provider          *string
	Status            *string
	AIAnalysis        *string
	FitScore          *int
	RecruiterName     *string
	RecruiterEmail    *string
	RecruiterPhone    *string
	RecruiterLinkedIn *string
}

func (u *JobPostingUpdate) assignments() *storage.Assignments {
	set := &storage.Assignments{}
	if u.Title != nil {
		set.Set("title", *u.Title)
	}
	if u.Company != nil {
		set.Set("company", *u.Company)
	}
	if u.Location != nil {
		set.Set("location", *u.Location)
	}
	if u.SalaryMin != nil {
		set.Set("salary_min", *u.SalaryMin)
	}
	if u.SalaryMax != nil {
		set.Set("salary_max", *u.SalaryMax)
	}
	if u.Description != nil {
		set.Set("description", *u.Description)
	}
	if u.URL != nil {
		set.Set("url", *u.URL)
	}
	if u.Provider != nil {
		set.Set("provider", *u.Provider)
	}
	if u.Status != nil {
		set.Set("status", *u.Status)
	}
	if u.AIAnalysis != nil {
		set.Set("ai_analysis", *u.AIAnalysis)
	}
	if u.FitScore != nil {
		set.Set("fit_score", *u.FitScore)
	}
	if u.RecruiterName != nil {
		set.Set("recruiter_name", *u.RecruiterName)
	}
	if u.RecruiterEmail != nil {
		set.Set("recruiter_email", *u.RecruiterEmail)
	}
	if u.RecruiterPhone != nil {
		set.Set("recruiter_phone", *u.RecruiterPhone)
	}
	if u.RecruiterLinkedIn != nil {
		set.Set("recruiter_linkedin", *u.RecruiterLinkedIn)
	}
	return set
}

// Application tracks progress against one posting. The milestone dates are
// stamped the first time the matching status is reached and never
// overwritten afterwards.
type Application struct {
	ID            int64   `json:"id"`
	JobPostingID  int64   `json:"job_posting_id"`
	Status        string  `json:"status"`
	AppliedDate   *string `json:"applied_date,omitempty"`
	CallbackDate  *string `json:"callback_date,omitempty"`
	InterviewDate *string `json:"interview_date,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	ResumeID      *int64  `json:"resume_id,omitempty"`
	CoverLetter   *string `json:"cover_letter,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`

	// Hydrated from job_postings on reads.
	Title    string  `json:"title,omitempty"`
	Company  string  `json:"company,omitempty"`
	Location *string `json:"location,omitempty"`
}

// ApplicationCreateInput holds the fields accepted on application creation.
type ApplicationCreateInput struct {
	JobPostingID int64   `validate:"required,gt=0"`
	Status       string  `validate:"-"` // defaults to interested
	AppliedDate  *string `validate:"-"`
	Notes        *string `validate:"-"`
	ResumeID     *int64  `validate:"-"`
	CoverLetter  *string `validate:"-"`
}

// Validate checks the input at the repository boundary.
func (in *ApplicationCreateInput) Validate() error {
	validate := validator.New()
	return storage.NewValidationError(validate.Struct(in))
}

// ApplicationUpdate is a sparse update; nil fields are left untouched.
type ApplicationUpdate struct {
	Status      *string
	Notes       *string
	ResumeID    *int64
	CoverLetter *string
}

func (u *ApplicationUpdate) assignments() *storage.Assignments {
	set := &storage.Assignments{}
	if u.Status != nil {
		set.Set("status", *u.Status)
	}
	if u.Notes != nil {
		set.Set("notes", *u.Notes)
	}
	if u.ResumeID != nil {
		set.Set("resume_id", *u.ResumeID)
	}
	if u.CoverLetter != nil {
		set.Set("cover_letter", *u.CoverLetter)
	}
	return set
}

// Resume is a stored resume. At most one row carries is_master; SetMaster
// enforces that transactionally.
type Resume struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Content        string  `json:"content"`
	Skills         *string `json:"skills,omitempty"`
	Experience     *string `json:"experience,omitempty"`
	Education      *string `json:"education,omitempty"`
	Certifications *string `json:"certifications,omitempty"`
	IsMaster       bool    `json:"is_master"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// ResumeCreateInput holds the fields accepted on resume creation.
type ResumeCreateInput struct {
	Name           string  `validate:"required,min=1"`
	Content        string  `validate:"required,min=1"`
	Skills         *string `validate:"-"`
	Experience     *string `validate:"-"`
	Education      *string `validate:"-"`
	Certifications *string `validate:"-"`
	IsMaster       bool    `validate:"-"`
}

// Validate checks the input at the repository boundary.
func (in *ResumeCreateInput) Validate() error {
	validate := validator.New()
	return storage.NewValidationError(validate.Struct(in))
}

// ResumeUpdate is a sparse update; nil fields are left untouched.
type ResumeUpdate struct {
	Name           *string
	Content        *string
	Skills         *string
	Experience     *string
	Education      *string
	Certifications *string
	IsMaster       *bool
}

func (u *ResumeUpdate) assignments() *storage.Assignments {
	set := &storage.Assignments{}
	if u.Name != nil {
		set.Set("name", *u.Name)
	}
	if u.Content != nil {
		set.Set("content", *u.Content)
	}
	if u.Skills != nil {
		set.Set("skills", *u.Skills)
	}
	if u.Experience != nil {
		set.Set("experience", *u.Experience)
	}
	if u.Education != nil {
		set.Set("education", *u.Education)
	}
	if u.Certifications != nil {
		set.Set("certifications", *u.Certifications)
	}
	if u.IsMaster != nil {
		set.Set("is_master", boolToInt(*u.IsMaster))
	}
	return set
}

// ResumePackage is a generated tailoring artifact; the table is append-only.
type ResumePackage struct {
	ID              int64   `json:"id"`
	JobPostingID    *int64  `json:"job_posting_id,omitempty"`
	ResumeID        *int64  `json:"resume_id,omitempty"`
	CoverLetter     *string `json:"cover_letter,omitempty"`
	TailoredContent *string `json:"tailored_content,omitempty"`
	GeneratedAt     string  `json:"generated_at"`
}

// UserProfile is the singleton contact/credential row (zero or one per
// installation).
type UserProfile struct {
	ID           int64   `json:"id"`
	FullName     *string `json:"full_name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	LinkedIn     *string `json:"linkedin,omitempty"`
	GitHub       *string `json:"github,omitempty"`
	Portfolio    *string `json:"portfolio,omitempty"`
	ClaudeAPIKey *string `json:"claude_api_key,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// UserProfileUpdate carries the fields to merge into the singleton profile.
// Save upserts: update-if-exists, else insert.
type UserProfileUpdate struct {
	FullName     *string
	Email        *string
	Phone        *string
	LinkedIn     *string
	GitHub       *string
	Portfolio    *string
	ClaudeAPIKey *string
}

func (u *UserProfileUpdate) assignments() *storage.Assignments {
	set := &storage.Assignments{}
	if u.FullName != nil {
		set.Set("full_name", *u.FullName)
	}
	if u.Email != nil {
		set.Set("email", *u.Email)
	}
	if u.Phone != nil {
		set.Set("phone", *u.Phone)
	}
	if u.LinkedIn != nil {
		set.Set("linkedin", *u.LinkedIn)
	}
	if u.GitHub != nil {
		set.Set("github", *u.GitHub)
	}
	if u.Portfolio != nil {
		set.Set("portfolio", *u.Portfolio)
	}
	if u.ClaudeAPIKey != nil {
		set.Set("claude_api_key", *u.ClaudeAPIKey)
	}
	return set
}

// SearchEntry is one row of the append-only search log.
type SearchEntry struct {
	ID           int64   `json:"id"`
	Query        string  `json:"query"`
	Location     *string `json:"location,omitempty"`
	Filters      *string `json:"filters,omitempty"`
	ResultsCount int     `json:"results_count"`
	SearchedAt   string  `json:"searched_at"`
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
