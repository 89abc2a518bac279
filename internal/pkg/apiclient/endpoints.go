package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/pkg/errors"

	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	Role        models.Role `json:"role"`
}

type SignupRequest struct {
	Email         string      `json:"email"`
	Password      string      `json:"password"`
	Role          models.Role `json:"role"`
	FullName      string      `json:"fullName"`
	InstitutionID *int        `json:"institutionId"`
}

// Message is the backend's plain acknowledgement body.
type Message struct {
	Msg string `json:"msg"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return LoginResponse{}, err
	}
	if out.AccessToken == "" || out.Role == "" {
		return LoginResponse{}, errors.New("login response is missing access_token or role")
	}
	return out, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/signup", req, nil)
}

// Dashboard fetches the role payload at path, as computed by the layout.
func (c *Client) Dashboard(ctx context.Context, path string) (models.DashboardPayload, error) {
	var out models.DashboardPayload
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = models.DashboardPayload{}
	}
	return out, nil
}

func (c *Client) AdminUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.doJSON(ctx, http.MethodGet, "/admin/users", nil, &out)
	return out, err
}

func (c *Client) AdminInstitutions(ctx context.Context) ([]models.Institution, error) {
	var out []models.Institution
	err := c.doJSON(ctx, http.MethodGet, "/admin/institutions", nil, &out)
	return out, err
}

func (c *Client) AddInstitution(ctx context.Context, in models.InstitutionInput) (models.CreatedInstitution, error) {
	var out models.CreatedInstitution
	err := c.doJSON(ctx, http.MethodPost, "/admin/institutions", in, &out)
	return out, err
}

func (c *Client) UpdateInstitution(ctx context.Context, id int, in models.InstitutionInput) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/institutions/%d", id), in, nil)
}

func (c *Client) DeleteInstitution(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/institutions/%d", id), nil, nil)
}

func (c *Client) InstitutionDetails(ctx context.Context, id int) (models.InstitutionDetails, error) {
	var out models.InstitutionDetails
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/institutions/%d/details", id), nil, &out)
	return out, err
}

func (c *Client) Portfolio(ctx context.Context) (models.Portfolio, error) {
	var out models.Portfolio
	err := c.doJSON(ctx, http.MethodGet, "/student/portfolio", nil, &out)
	return out, err
}

func (c *Client) AddProject(ctx context.Context, in models.ProjectInput) (models.Project, error) {
	var out models.Project
	err := c.doJSON(ctx, http.MethodPost, "/student/portfolio/project", in, &out)
	return out, err
}

func (c *Client) DeleteProject(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/student/portfolio/project/%d", id), nil, nil)
}

func (c *Client) AddSkill(ctx context.Context, in models.SkillInput) (models.Skill, error) {
	var out models.Skill
	err := c.doJSON(ctx, http.MethodPost, "/student/portfolio/skill", in, &out)
	return out, err
}

func (c *Client) DeleteSkill(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/student/portfolio/skill/%d", id), nil, nil)
}

func (c *Client) AddLink(ctx context.Context, in models.LinkInput) (models.Link, error) {
	var out models.Link
	err := c.doJSON(ctx, http.MethodPost, "/student/portfolio/link", in, &out)
	return out, err
}

func (c *Client) DeleteLink(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/student/portfolio/link/%d", id), nil, nil)
}

// UploadInstitutionData posts a CSV as the multipart field "file".
func (c *Client) UploadInstitutionData(ctx context.Context, filename string, r io.Reader) (Message, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return Message{}, errors.Wrap(err, "creating upload part")
	}
	if _, err := io.Copy(part, r); err != nil {
		return Message{}, errors.Wrap(err, "reading upload")
	}
	if err := w.Close(); err != nil {
		return Message{}, errors.Wrap(err, "closing multipart body")
	}

	var out Message
	err = c.do(ctx, http.MethodPost, "/institution/upload", &buf, w.FormDataContentType(), &out)
	return out, err
}
