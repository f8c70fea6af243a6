package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
)

func countAssignments(t *testing.T, db *gorm.DB, taskID, userID uint64) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.TaskAssignment{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error)
	return count
}

func TestTaskService_AssignUser_Idempotent(t *testing.T) {
	env := setupProjectServiceTest(t)
	owner := createServiceTestUser(t, env.db, "owner")
	assignee := createServiceTestUser(t, env.db, "assignee")

	project, err := env.projectService.CreateProject(CreateProjectInput{
		Title:   "Project",
		ActorID: &owner.ID,
	})
	require.NoError(t, err)

	task, err := env.taskService.CreateTask(project.ID, CreateTaskInput{Title: "Task"})
	require.NoError(t, err)

	_, err = env.taskService.AssignUser(project.ID, task.ID, assignee.ID)
	require.NoError(t, err)

	// Attaching the same user again must not create a duplicate row.
	loaded, err := env.taskService.AssignUser(project.ID, task.ID, assignee.ID)
	require.NoError(t, err)

	require.EqualValues(t, 1, countAssignments(t, env.db, task.ID, assignee.ID))
	require.Len(t, loaded.Assignments, 1)
}

func TestTaskService_AssignUser_AfterUnassign(t *testing.T) {
	env := setupProjectServiceTest(t)
	owner := createServiceTestUser(t, env.db, "owner")
	assignee := createServiceTestUser(t, env.db, "assignee")

	project, err := env.projectService.CreateProject(CreateProjectInput{
		Title:   "Project",
		ActorID: &owner.ID,
	})
	require.NoError(t, err)

	task, err := env.taskService.CreateTask(project.ID, CreateTaskInput{Title: "Task"})
	require.NoError(t, err)

	_, err = env.taskService.AssignUser(project.ID, task.ID, assignee.ID)
	require.NoError(t, err)
	_, err = env.taskService.UnassignUser(project.ID, task.ID, assignee.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, countAssignments(t, env.db, task.ID, assignee.ID))

	_, err = env.taskService.AssignUser(project.ID, task.ID, assignee.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, countAssignments(t, env.db, task.ID, assignee.ID))
}

func TestTaskService_UnassignUser_MissingPairIsNoOp(t *testing.T) {
	env := setupProjectServiceTest(t)
	owner := createServiceTestUser(t, env.db, "owner")
	stranger := createServiceTestUser(t, env.db, "stranger")

	project, err := env.projectService.CreateProject(CreateProjectInput{
		Title:   "Project",
		ActorID: &owner.ID,
	})
	require.NoError(t, err)

	task, err := env.taskService.CreateTask(project.ID, CreateTaskInput{Title: "Task"})
	require.NoError(t, err)

	_, err = env.taskService.UnassignUser(project.ID, task.ID, stranger.ID)
	require.NoError(t, err)
}

func TestTaskService_AssignUser_UnknownUser(t *testing.T) {
	env := setupProjectServiceTest(t)
	owner := createServiceTestUser(t, env.db, "owner")

	project, err := env.projectService.CreateProject(CreateProjectInput{
		Title:   "Project",
		ActorID: &owner.ID,
	})
	require.NoError(t, err)

	task, err := env.taskService.CreateTask(project.ID, CreateTaskInput{Title: "Task"})
	require.NoError(t, err)

	_, err = env.taskService.AssignUser(project.ID, task.ID, 42424242)
	require.ErrorIs(t, err, ErrAssigneeNotFound)
}

func TestTaskService_CreateTask_ColumnMustBelongToProject(t *testing.T) {
	env := setupProjectServiceTest(t)
	owner := createServiceTestUser(t, env.db, "owner")

	project, err := env.projectService.CreateProject(CreateProjectInput{
		Title:   "Project",
		ActorID: &owner.ID,
	})
	require.NoError(t, err)

	other, err := env.projectService.CreateProject(CreateProjectInput{
		Title:   "Other project",
		ActorID: &owner.ID,
	})
	require.NoError(t, err)

	foreignColumn, err := env.columnService.CreateColumn(other.ID, "Foreign")
	require.NoError(t, err)

	_, err = env.taskService.CreateTask(project.ID, CreateTaskInput{
		Title:    "Task",
		ColumnID: &foreignColumn.ID,
	})
	require.ErrorIs(t, err, ErrColumnNotInProject)
}

func TestTaskService_UpdateTask_MoveAndClearColumn(t *testing.T) {
	env := setupProjectServiceTest(t)
	owner := createServiceTestUser(t, env.db, "owner")

	project, err := env.projectService.CreateProject(CreateProjectInput{
		Title:   "Project",
		ActorID: &owner.ID,
	})
	require.NoError(t, err)

	column, err := env.columnService.CreateColumn(project.ID, "To Do")
	require.NoError(t, err)

	task, err := env.taskService.CreateTask(project.ID, CreateTaskInput{Title: "Task"})
	require.NoError(t, err)
	require.Nil(t, task.ColumnID)

	moved, err := env.taskService.UpdateTask(project.ID, task.ID, UpdateTaskInput{ColumnID: &column.ID})
	require.NoError(t, err)
	require.NotNil(t, moved.ColumnID)
	require.Equal(t, column.ID, *moved.ColumnID)

	cleared, err := env.taskService.UpdateTask(project.ID, task.ID, UpdateTaskInput{ClearColumn: true})
	require.NoError(t, err)
	require.Nil(t, cleared.ColumnID)
}

func TestTaskService_GetTask_ScopedToProject(t *testing.T) {
	env := setupProjectServiceTest(t)
	owner := createServiceTestUser(t, env.db, "owner")

	project, err := env.projectService.CreateProject(CreateProjectInput{
		Title:   "Project",
		ActorID: &owner.ID,
	})
	require.NoError(t, err)

	other, err := env.projectService.CreateProject(CreateProjectInput{
		Title:   "Other project",
		ActorID: &owner.ID,
	})
	require.NoError(t, err)

	task, err := env.taskService.CreateTask(other.ID, CreateTaskInput{Title: "Task"})
	require.NoError(t, err)

	_, err = env.taskService.GetTask(project.ID, task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_DeleteTask_RemovesAssignments(t *testing.T) {
	env := setupProjectServiceTest(t)
	owner := createServiceTestUser(t, env.db, "owner")
	assignee := createServiceTestUser(t, env.db, "assignee")

	project, err := env.projectService.CreateProject(CreateProjectInput{
		Title:   "Project",
		ActorID: &owner.ID,
	})
	require.NoError(t, err)

	task, err := env.taskService.CreateTask(project.ID, CreateTaskInput{Title: "Task"})
	require.NoError(t, err)

	_, err = env.taskService.AssignUser(project.ID, task.ID, assignee.ID)
	require.NoError(t, err)

	require.NoError(t, env.taskService.DeleteTask(project.ID, task.ID))

	_, err = env.taskService.GetTask(project.ID, task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
	require.EqualValues(t, 0, countAssignments(t, env.db, task.ID, assignee.ID))
}
