package welearn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the WeLearn instance of IISER Kolkata
	DefaultBaseURL = "https://welearn.iiserkol.ac.in"

	loginPath   = "/login/token.php"
	serverPath  = "/webservice/rest/server.php"
	serviceName = "moodle_mobile_app"

	fnCoursesByField       = "core_course_get_courses_by_field"
	fnResourcesByCourses   = "mod_resource_get_resources_by_courses"
	fnAssignments          = "mod_assign_get_assignments"
	defaultClientUserAgent = "welearn-bot"
)

// ErrInvalidLogin is wrapped by Login when the server rejects the credentials.
var ErrInvalidLogin = errors.New("invalid login, please try again")

// ErrNotLoggedIn is returned by calls that need a token before Login succeeded.
var ErrNotLoggedIn = errors.New("not logged in")

// Downloader retrieves the contents of a file URL
type Downloader interface {
	Download(ctx context.Context, fileURL string, w io.Writer) error
}

// API is the part of the web service the bot talks to
type API interface {
	Downloader
	Courses(ctx context.Context) ([]Course, error)
	Resources(ctx context.Context) ([]Resource, error)
	Assignments(ctx context.Context) ([]AssignmentCourse, error)
}

type ClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client talks to the Moodle web service over a single HTTP session
type Client struct {
	http  *resty.Client
	token string
}

func NewClient(opts ClientOptions) *Client {
	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultClientUserAgent
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("User-Agent", userAgent)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &Client{http: client}
}

// Token returns the web service token obtained by Login
func (c *Client) Token() string {
	return c.token
}

// Login exchanges the credentials for a web service token
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": creds.Username,
			"password": creds.Password,
			"service":  serviceName,
		}).
		Post(loginPath)
	if err != nil {
		return newError(KindNetwork, "login", err)
	}
	if res.IsError() {
		return newError(KindNetwork, "login", fmt.Errorf("unexpected status %s", res.Status()))
	}

	var body tokenResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return newError(KindAuth, "login", fmt.Errorf("malformed token response: %w", err))
	}
	if body.ErrorCode == "invalidlogin" {
		return newError(KindAuth, "login", ErrInvalidLogin)
	}
	if body.Error != "" {
		return newError(KindAuth, "login", fmt.Errorf("%s (%s)", body.Error, body.ErrorCode))
	}
	if body.Token == "" {
		return newError(KindAuth, "login", errors.New("token missing from login response"))
	}

	c.token = body.Token
	logrus.Debug("obtained web service token")
	return nil
}

// Courses lists the courses visible to the logged in user
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	var out coursesResponse
	if err := c.call(ctx, fnCoursesByField, &out); err != nil {
		return nil, err
	}
	return out.Courses, nil
}

// Resources lists the file resources of every course of the user
func (c *Client) Resources(ctx context.Context) ([]Resource, error) {
	var out resourcesResponse
	if err := c.call(ctx, fnResourcesByCourses, &out); err != nil {
		return nil, err
	}
	return out.Resources, nil
}

// Assignments lists the assignments of every course of the user, grouped by course
func (c *Client) Assignments(ctx context.Context) ([]AssignmentCourse, error) {
	var out assignmentsResponse
	if err := c.call(ctx, fnAssignments, &out); err != nil {
		return nil, err
	}
	return out.Courses, nil
}

func (c *Client) call(ctx context.Context, function string, out any) error {
	if c.token == "" {
		return newError(KindAuth, function, ErrNotLoggedIn)
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"wstoken":            c.token,
			"moodlewsrestformat": "json",
			"wsfunction":         function,
		}).
		Post(serverPath)
	if err != nil {
		return newError(KindNetwork, function, err)
	}
	if res.IsError() {
		return newError(KindNetwork, function, fmt.Errorf("unexpected status %s", res.Status()))
	}

	body := res.Body()
	var exception wsException
	if err := json.Unmarshal(body, &exception); err == nil && exception.Exception != "" {
		return newError(KindRemote, function, fmt.Errorf("%s (%s)", exception.Message, exception.ErrorCode))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return newError(KindRemote, function, fmt.Errorf("malformed response: %w", err))
	}
	return nil
}

// Download streams the file at fileURL into w, authenticating with the token
func (c *Client) Download(ctx context.Context, fileURL string, w io.Writer) error {
	if c.token == "" {
		return newError(KindAuth, "download", ErrNotLoggedIn)
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"token": c.token}).
		SetDoNotParseResponse(true).
		Post(fileURL)
	if err != nil {
		return newError(KindNetwork, "download", err)
	}
	body := res.RawBody()
	defer closeQuietly(body)

	if res.IsError() {
		return newError(KindNetwork, "download", fmt.Errorf("unexpected status %d for %s", res.StatusCode(), fileURL))
	}
	if _, err := io.Copy(w, body); err != nil {
		return newError(KindNetwork, "download", err)
	}
	return nil
}
