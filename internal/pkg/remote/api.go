// Package remote implements calls to the QTM backend API.
package remote

import (
	"context"
	"fmt"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"go.uber.org/zap"

	"github.com/qtmops/coco-cloner/internal/pkg/client"
	"github.com/qtmops/coco-cloner/internal/pkg/json"
	"github.com/qtmops/coco-cloner/internal/pkg/model"
)

type QtmApi struct {
	http    *client.Client
	baseUrl string
	token   string
}

func NewQtmApi(ctx context.Context, baseUrl string, logger *zap.SugaredLogger, verbose bool) *QtmApi {
	http := client.NewClient(ctx, logger, verbose).WithHostUrl(baseUrl)
	http.SetError(&Error{})
	return &QtmApi{http: http, baseUrl: baseUrl}
}

func (a QtmApi) WithToken(token string) *QtmApi {
	a.token = token
	a.http.SetHeader("Authorization", "Bearer "+token)
	return &a
}

func (a *QtmApi) BaseUrl() string {
	return a.baseUrl
}

// Login verifies the credentials and returns a bearer token.
func (a *QtmApi) Login(userName string, password string) (string, error) {
	result := &model.TokenResponse{}
	_, err := a.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"userName": userName, "password": password}).
		SetResult(result).
		Post("/api/v1/login")
	if err != nil {
		if v, ok := err.(*Error); ok && v.IsUnauthorized() {
			return "", fmt.Errorf("invalid credentials")
		}
		return "", fmt.Errorf("authentication request failed: %w", err)
	}

	if result.AccessToken == "" {
		return "", fmt.Errorf(`"accessToken" not found in the login response`)
	}
	return result.AccessToken, nil
}

// MyProjects lists projects visible to the authenticated user.
func (a *QtmApi) MyProjects() ([]*model.Project, error) {
	projects := make([]*model.Project, 0)
	_, err := a.http.R().
		SetResult(&projects).
		Get("/api/v1/users/me/projects")
	if err != nil {
		return nil, fmt.Errorf("cannot list projects: %w", err)
	}
	return projects, nil
}

// ProjectName resolves the project name, empty string if not found.
func (a *QtmApi) ProjectName(projectId model.ProjectId) (string, error) {
	projects, err := a.MyProjects()
	if err != nil {
		return "", err
	}
	for _, project := range projects {
		if project.Id == projectId {
			return project.Name, nil
		}
	}
	return "", nil
}

// Workflows lists workflows of the project. The backend returns either an
// array or a single object, both shapes are accepted.
func (a *QtmApi) Workflows(projectId model.ProjectId) ([]*model.Workflow, error) {
	res, err := a.http.R().
		SetPathParam("projectId", projectId.String()).
		Get("/api/v1/project/{projectId}/workflows")
	if err != nil {
		return nil, fmt.Errorf("cannot list workflows: %w", err)
	}

	workflows := make([]*model.Workflow, 0)
	if err := json.Decode(res.Body(), &workflows); err == nil {
		return workflows, nil
	}

	// Single workflow object
	workflow := &model.Workflow{}
	if err := json.Decode(res.Body(), workflow); err != nil {
		return nil, fmt.Errorf("cannot decode workflows response: %w", err)
	}
	return []*model.Workflow{workflow}, nil
}

// CollectionConfigurations returns the configuration index keyed by the
// workflow phase ID as string.
func (a *QtmApi) CollectionConfigurations(projectId model.ProjectId) (map[string]*model.CollectionConfiguration, error) {
	configurations := make(map[string]*model.CollectionConfiguration)
	_, err := a.http.R().
		SetPathParam("projectId", projectId.String()).
		SetResult(&configurations).
		Get("/api/v1/project/{projectId}/collection-configurations")
	if err != nil {
		return nil, fmt.Errorf("cannot list collection configurations: %w", err)
	}
	return configurations, nil
}

// CreateCollectionConfiguration submits the minimal payload, returns the
// created configuration as reported by the backend.
func (a *QtmApi) CreateCollectionConfiguration(payload *orderedmap.OrderedMap) (*orderedmap.OrderedMap, error) {
	res, err := a.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(json.MustEncode(payload, false)).
		Put("/api/v1/collection-configurations")
	if err != nil {
		return nil, fmt.Errorf("cannot create collection configuration: %w", err)
	}

	result := orderedmap.New()
	if len(res.Body()) > 0 {
		if err := json.Decode(res.Body(), result); err != nil {
			return nil, fmt.Errorf("cannot decode create response: %w", err)
		}
	}
	return result, nil
}
