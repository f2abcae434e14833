package welearn

// Course is a course as returned by core_course_get_courses_by_field
type Course struct {
	ID        int    `json:"id"`
	ShortName string `json:"shortname"`
	FullName  string `json:"fullname"`
}

// File is a downloadable file. FileURL identifies it in the link cache.
type File struct {
	Filename     string `json:"filename"`
	FilePath     string `json:"filepath"`
	FileSize     int64  `json:"filesize"`
	FileURL      string `json:"fileurl"`
	TimeModified int64  `json:"timemodified"`
	MimeType     string `json:"mimetype"`
}

// Resource is a course resource module holding one or more files
type Resource struct {
	ID           int    `json:"id"`
	Course       int    `json:"course"`
	Name         string `json:"name"`
	ContentFiles []File `json:"contentfiles"`
}

// Assignment is an assignment with its optional attachments
type Assignment struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Intro            string `json:"intro"`
	DueDate          int64  `json:"duedate"`
	IntroAttachments []File `json:"introattachments"`
}

// AssignmentCourse groups the assignments of one course
type AssignmentCourse struct {
	ID          int          `json:"id"`
	ShortName   string       `json:"shortname"`
	FullName    string       `json:"fullname"`
	Assignments []Assignment `json:"assignments"`
}

type coursesResponse struct {
	Courses []Course `json:"courses"`
}

type resourcesResponse struct {
	Resources []Resource `json:"resources"`
}

type assignmentsResponse struct {
	Courses []AssignmentCourse `json:"courses"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	Error     string `json:"error"`
	ErrorCode string `json:"errorcode"`
}

// wsException is the envelope Moodle answers with when a web service call fails
type wsException struct {
	Exception string `json:"exception"`
	ErrorCode string `json:"errorcode"`
	Message   string `json:"message"`
}
