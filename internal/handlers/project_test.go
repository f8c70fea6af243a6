package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/models"
)

func TestCreateProject_StampsOwner(t *testing.T) {
	env := setupHandlerTest(t)
	user, cookies := env.signupAndLogin(t, "alice")

	w := env.doJSON(t, http.MethodPost, "/api/projects", gin.H{
		"title":       "Website relaunch",
		"description": "Q4 board",
	}, cookies)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "Website relaunch", body["title"])

	var project models.Project
	require.NoError(t, env.db.First(&project, uint64(body["id"].(float64))).Error)
	require.NotNil(t, project.OwnerID)
	require.Equal(t, user.ID, *project.OwnerID)
}

func TestCreateProject_MissingTitle(t *testing.T) {
	env := setupHandlerTest(t)
	_, cookies := env.signupAndLogin(t, "alice")

	w := env.doJSON(t, http.MethodPost, "/api/projects", gin.H{
		"description": "no title",
	}, cookies)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProject_OutsiderGets404(t *testing.T) {
	env := setupHandlerTest(t)
	_, ownerCookies := env.signupAndLogin(t, "alice")
	_, outsiderCookies := env.signupAndLogin(t, "bob")

	w := env.doJSON(t, http.MethodPost, "/api/projects", gin.H{"title": "Private"}, ownerCookies)
	require.Equal(t, http.StatusCreated, w.Code)
	projectID := uint64(decodeBody(t, w)["id"].(float64))

	path := fmt.Sprintf("/api/projects/%d", projectID)

	w = env.doJSON(t, http.MethodGet, path, nil, ownerCookies)
	require.Equal(t, http.StatusOK, w.Code)

	// Same status as a project that does not exist.
	w = env.doJSON(t, http.MethodGet, path, nil, outsiderCookies)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/projects/99999", nil, ownerCookies)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProject_UsersArraySyncsMembers(t *testing.T) {
	env := setupHandlerTest(t)
	_, cookies := env.signupAndLogin(t, "alice")
	userB, _ := env.signupAndLogin(t, "bob")
	userC, _ := env.signupAndLogin(t, "carol")

	w := env.doJSON(t, http.MethodPost, "/api/projects", gin.H{"title": "Shared"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	projectID := uint64(decodeBody(t, w)["id"].(float64))
	path := fmt.Sprintf("/api/projects/%d", projectID)

	w = env.doJSON(t, http.MethodPut, path, gin.H{"users": []uint64{userB.ID}}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	members, err := env.projectService.ListMembers(projectID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, userB.ID, members[0].UserID)

	// The next sync replaces the set instead of merging.
	w = env.doJSON(t, http.MethodPut, path, gin.H{"users": []uint64{userC.ID}}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	members, err = env.projectService.ListMembers(projectID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, userC.ID, members[0].UserID)
}

func TestUpdateProject_OmittedUsersLeavesMembers(t *testing.T) {
	env := setupHandlerTest(t)
	_, cookies := env.signupAndLogin(t, "alice")
	userB, _ := env.signupAndLogin(t, "bob")

	w := env.doJSON(t, http.MethodPost, "/api/projects", gin.H{"title": "Shared"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	projectID := uint64(decodeBody(t, w)["id"].(float64))
	path := fmt.Sprintf("/api/projects/%d", projectID)

	_, err := env.projectService.ToggleUser(projectID, userB.ID)
	require.NoError(t, err)

	w = env.doJSON(t, http.MethodPut, path, gin.H{"title": "Renamed"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	members, err := env.projectService.ListMembers(projectID)
	require.NoError(t, err)
	require.Len(t, members, 1)
}

func TestToggleMember(t *testing.T) {
	env := setupHandlerTest(t)
	_, cookies := env.signupAndLogin(t, "alice")
	userB, _ := env.signupAndLogin(t, "bob")

	w := env.doJSON(t, http.MethodPost, "/api/projects", gin.H{"title": "Shared"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	projectID := uint64(decodeBody(t, w)["id"].(float64))
	path := fmt.Sprintf("/api/projects/%d/members/toggle", projectID)

	w = env.doJSON(t, http.MethodPost, path, gin.H{"user_id": userB.ID}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, decodeBody(t, w)["assigned"])

	w = env.doJSON(t, http.MethodPost, path, gin.H{"user_id": userB.ID}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, false, body["assigned"])
	require.Empty(t, body["members"])
}

func TestUnassignUsers_MissingPairIsNoOp(t *testing.T) {
	env := setupHandlerTest(t)
	_, cookies := env.signupAndLogin(t, "alice")
	userB, _ := env.signupAndLogin(t, "bob")
	userC, _ := env.signupAndLogin(t, "carol")

	w := env.doJSON(t, http.MethodPost, "/api/projects", gin.H{"title": "Shared"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	projectID := uint64(decodeBody(t, w)["id"].(float64))

	_, err := env.projectService.ToggleUser(projectID, userB.ID)
	require.NoError(t, err)

	path := fmt.Sprintf("/api/projects/%d/un-assign", projectID)
	w = env.doJSON(t, http.MethodPut, path, gin.H{"users": []uint64{userC.ID}}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	members, err := env.projectService.ListMembers(projectID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, userB.ID, members[0].UserID)
}

func TestDeleteProject(t *testing.T) {
	env := setupHandlerTest(t)
	_, cookies := env.signupAndLogin(t, "alice")

	w := env.doJSON(t, http.MethodPost, "/api/projects", gin.H{"title": "Doomed"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	projectID := uint64(decodeBody(t, w)["id"].(float64))
	path := fmt.Sprintf("/api/projects/%d", projectID)

	w = env.doJSON(t, http.MethodDelete, path, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodGet, path, nil, cookies)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListProjects_OnlyVisibleOnes(t *testing.T) {
	env := setupHandlerTest(t)
	_, aliceCookies := env.signupAndLogin(t, "alice")
	bob, bobCookies := env.signupAndLogin(t, "bob")

	w := env.doJSON(t, http.MethodPost, "/api/projects", gin.H{"title": "Alice's"}, aliceCookies)
	require.Equal(t, http.StatusCreated, w.Code)
	sharedID := uint64(decodeBody(t, w)["id"].(float64))

	w = env.doJSON(t, http.MethodPost, "/api/projects", gin.H{"title": "Alice's private"}, aliceCookies)
	require.Equal(t, http.StatusCreated, w.Code)

	_, err := env.projectService.ToggleUser(sharedID, bob.ID)
	require.NoError(t, err)

	w = env.doJSON(t, http.MethodGet, "/api/projects", nil, bobCookies)
	require.Equal(t, http.StatusOK, w.Code)

	projects := decodeBody(t, w)["projects"].([]interface{})
	require.Len(t, projects, 1)
	first := projects[0].(map[string]interface{})
	require.EqualValues(t, sharedID, first["id"])
}
