package remote

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtmops/coco-cloner/internal/pkg/log"
	"github.com/qtmops/coco-cloner/internal/pkg/model"
)

const testBaseUrl = "https://qtm-backend-qa.azurewebsites.net"

func testApi(t *testing.T) *QtmApi {
	t.Helper()
	api := NewQtmApi(context.Background(), testBaseUrl, log.NewNopLogger(), false)
	api.http.Resty().SetRetryCount(0)
	httpmock.ActivateNonDefault(api.http.Resty().GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return api.WithToken("test-token")
}

func TestLogin(t *testing.T) {
	t.Parallel()
	api := testApi(t)
	httpmock.RegisterResponder("POST", testBaseUrl+"/api/v1/login",
		httpmock.NewStringResponder(200, `{"accessToken": "new-token"}`))

	token, err := api.Login("user", "pass")
	require.NoError(t, err)
	assert.Equal(t, "new-token", token)
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Parallel()
	api := testApi(t)
	httpmock.RegisterResponder("POST", testBaseUrl+"/api/v1/login",
		httpmock.NewStringResponder(401, `{"message": "unauthorized"}`))

	_, err := api.Login("user", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestLoginMissingToken(t *testing.T) {
	t.Parallel()
	api := testApi(t)
	httpmock.RegisterResponder("POST", testBaseUrl+"/api/v1/login",
		httpmock.NewStringResponder(200, `{}`))

	_, err := api.Login("user", "pass")
	require.Error(t, err)
	assert.Equal(t, `"accessToken" not found in the login response`, err.Error())
}

func TestMyProjects(t *testing.T) {
	t.Parallel()
	api := testApi(t)
	httpmock.RegisterResponder("GET", testBaseUrl+"/api/v1/users/me/projects",
		httpmock.NewStringResponder(200, `[{"id": 267, "name": "Survey 2026"}]`))

	projects, err := api.MyProjects()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, model.ProjectId(267), projects[0].Id)

	name, err := api.ProjectName(model.ProjectId(267))
	require.NoError(t, err)
	assert.Equal(t, "Survey 2026", name)

	name, err = api.ProjectName(model.ProjectId(999))
	require.NoError(t, err)
	assert.Equal(t, "", name)
}

func TestWorkflowsArray(t *testing.T) {
	t.Parallel()
	api := testApi(t)
	httpmock.RegisterResponder("GET", testBaseUrl+"/api/v1/project/267/workflows",
		httpmock.NewStringResponder(200, `[{"id": 1, "phases": [{"id": 10, "name": "Phase A", "type": {"name": "2D Web Collection"}}]}]`))

	workflows, err := api.Workflows(model.ProjectId(267))
	require.NoError(t, err)
	require.Len(t, workflows, 1)
	require.Len(t, workflows[0].Phases, 1)
	assert.Equal(t, model.PhaseId(10), workflows[0].Phases[0].Id)
}

func TestWorkflowsSingleObject(t *testing.T) {
	t.Parallel()
	api := testApi(t)
	httpmock.RegisterResponder("GET", testBaseUrl+"/api/v1/project/267/workflows",
		httpmock.NewStringResponder(200, `{"id": 1, "phases": []}`))

	workflows, err := api.Workflows(model.ProjectId(267))
	require.NoError(t, err)
	require.Len(t, workflows, 1)
	assert.Equal(t, 1, workflows[0].Id)
}

func TestPhasesWithConfigurations(t *testing.T) {
	t.Parallel()
	api := testApi(t)
	httpmock.RegisterResponder("GET", testBaseUrl+"/api/v1/project/267/workflows",
		httpmock.NewStringResponder(200, `[{"id": 1, "phases": [
			{"id": 10, "name": "Collection A", "type": {"name": "2D Web Collection"}},
			{"id": 11, "name": "Collection B", "type": {"name": "QC Web Collection"}},
			{"id": 12, "name": "Review", "type": {"name": "Review"}}
		]}]`))
	httpmock.RegisterResponder("GET", testBaseUrl+"/api/v1/project/267/collection-configurations",
		httpmock.NewStringResponder(200, `{"10": {"id": 1864}}`))

	phases, err := api.PhasesWithConfigurations(model.ProjectId(267))
	require.NoError(t, err)

	// The "Review" phase type is filtered out
	require.Len(t, phases, 2)
	assert.True(t, phases[0].HasConfiguration())
	assert.Equal(t, model.ConfigurationId(1864), *phases[0].CollectionConfigurationId)
	assert.False(t, phases[1].HasConfiguration())

	eligible := EligiblePhases(phases)
	require.Len(t, eligible, 1)
	assert.Equal(t, model.PhaseId(11), eligible[0].Id)
}

func TestPhasesWithConfigurationsIndexFailure(t *testing.T) {
	t.Parallel()
	api := testApi(t)
	httpmock.RegisterResponder("GET", testBaseUrl+"/api/v1/project/267/workflows",
		httpmock.NewStringResponder(200, `[{"id": 1, "phases": [{"id": 10, "name": "A", "type": {"name": "2D iOS Collection"}}]}]`))
	httpmock.RegisterResponder("GET", testBaseUrl+"/api/v1/project/267/collection-configurations",
		httpmock.NewStringResponder(500, ``))

	// Phases are returned even when the configuration index is unavailable
	phases, err := api.PhasesWithConfigurations(model.ProjectId(267))
	require.NoError(t, err)
	require.Len(t, phases, 1)
	assert.False(t, phases[0].HasConfiguration())
}

func TestCreateCollectionConfiguration(t *testing.T) {
	t.Parallel()
	api := testApi(t)

	var sentBody []byte
	var sentHeaders http.Header
	httpmock.RegisterResponder("PUT", testBaseUrl+"/api/v1/collection-configurations", func(req *http.Request) (*http.Response, error) {
		sentHeaders = req.Header
		sentBody, _ = io.ReadAll(req.Body)
		return httpmock.NewStringResponse(200, `{"id": 2001}`), nil
	})

	payload := orderedmap.FromPairs([]orderedmap.Pair{
		{Key: "workflowPhaseId", Value: 42},
		{Key: "isLocationCollectionConfiguration", Value: false},
		{Key: "modules", Value: []interface{}{}},
	})

	result, err := api.CreateCollectionConfiguration(payload)
	require.NoError(t, err)
	assert.Equal(t, float64(2001), result.GetOrNil("id"))
	assert.Equal(t, "Bearer test-token", sentHeaders.Get("Authorization"))
	assert.JSONEq(t, `{"workflowPhaseId":42,"isLocationCollectionConfiguration":false,"modules":[]}`, string(sentBody))
}

func TestBaseUrlLookup(t *testing.T) {
	t.Parallel()
	url, err := BaseUrl(" QA ")
	require.NoError(t, err)
	assert.Equal(t, "https://qtm-backend-qa.azurewebsites.net", url)

	_, err = BaseUrl("unknown")
	require.Error(t, err)
	assert.Equal(t, `unknown environment "unknown", expected one of: dev, prod, qa, staging`, err.Error())
}
