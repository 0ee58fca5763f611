package progressController_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"lms/models"
	"lms/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	env     *testutil.Env
	student models.User
	token   string
	course  models.Course
	lessons []models.Lesson
}

func newFixture(t *testing.T, lessonCount int) *fixture {
	t.Helper()
	env := testutil.Setup(t)
	student := env.CreateUser(t, "Hal", "hal@lms.test", models.RoleStudent, true)

	course := models.Course{Title: "Course"}
	require.NoError(t, env.DB.Create(&course).Error)

	lessons := make([]models.Lesson, lessonCount)
	for i := range lessons {
		lessons[i] = models.Lesson{CourseID: course.ID, Title: fmt.Sprintf("L%d", i), OrderIndex: i}
		require.NoError(t, env.DB.Create(&lessons[i]).Error)
	}

	return &fixture{env: env, student: student, token: env.Token(t, student), course: course, lessons: lessons}
}

func (f *fixture) enroll(t *testing.T, courseID uint) testutil.Response {
	return f.env.JSON(t, http.MethodPost, "/api/enroll", map[string]uint{"user_id": f.student.ID, "course_id": courseID}, f.token)
}

func (f *fixture) mark(t *testing.T, lessonID uint, completed bool) testutil.Response {
	body := map[string]interface{}{"user_id": f.student.ID, "lesson_id": lessonID, "completed": completed}
	return f.env.JSON(t, http.MethodPost, "/api/progress", body, f.token)
}

type courseProgress struct {
	CompletedLessons []uint `json:"completed_lessons"`
	TotalLessons     int64  `json:"total_lessons"`
	Progress         int    `json:"progress"`
}

func (f *fixture) progress(t *testing.T, courseID uint) courseProgress {
	t.Helper()
	resp := f.env.JSON(t, http.MethodGet, fmt.Sprintf("/api/users/%d/course/%d/progress", f.student.ID, courseID), nil, f.token)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	var out courseProgress
	resp.Decode(t, &out)
	return out
}

func TestEnrollIsIdempotent(t *testing.T) {
	f := newFixture(t, 1)
	checkPath := fmt.Sprintf("/api/users/%d/enrollment/%d", f.student.ID, f.course.ID)

	resp := f.env.JSON(t, http.MethodGet, checkPath, nil, f.token)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, false, resp.Map(t)["enrolled"])

	require.Equal(t, http.StatusOK, f.enroll(t, f.course.ID).Status)
	require.Equal(t, http.StatusOK, f.enroll(t, f.course.ID).Status)

	var count int64
	f.env.DB.Model(&models.Enrollment{}).Count(&count)
	assert.Equal(t, int64(1), count)

	resp = f.env.JSON(t, http.MethodGet, checkPath, nil, f.token)
	assert.Equal(t, true, resp.Map(t)["enrolled"])

	assert.Equal(t, http.StatusNotFound, f.enroll(t, 999).Status)
}

func TestToggleProgress(t *testing.T) {
	f := newFixture(t, 3)

	p := f.progress(t, f.course.ID)
	assert.Empty(t, p.CompletedLessons)
	assert.Equal(t, int64(3), p.TotalLessons)
	assert.Equal(t, 0, p.Progress)

	require.Equal(t, http.StatusOK, f.mark(t, f.lessons[0].ID, true).Status)
	require.Equal(t, http.StatusOK, f.mark(t, f.lessons[0].ID, true).Status)
	require.Equal(t, http.StatusOK, f.mark(t, f.lessons[2].ID, true).Status)

	p = f.progress(t, f.course.ID)
	assert.Equal(t, []uint{f.lessons[0].ID, f.lessons[2].ID}, p.CompletedLessons)
	assert.Equal(t, 67, p.Progress)

	require.Equal(t, http.StatusOK, f.mark(t, f.lessons[0].ID, false).Status)
	require.Equal(t, http.StatusOK, f.mark(t, f.lessons[1].ID, false).Status)

	p = f.progress(t, f.course.ID)
	assert.Equal(t, []uint{f.lessons[2].ID}, p.CompletedLessons)
	assert.Equal(t, 33, p.Progress)

	assert.Equal(t, http.StatusNotFound, f.mark(t, 999, true).Status)

	resp := f.env.JSON(t, http.MethodPost, "/api/progress", map[string]interface{}{"user_id": f.student.ID, "lesson_id": f.lessons[0].ID}, f.token)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestProgressOfEmptyCourse(t *testing.T) {
	f := newFixture(t, 0)

	p := f.progress(t, f.course.ID)
	assert.Equal(t, int64(0), p.TotalLessons)
	assert.Equal(t, 0, p.Progress)

	resp := f.env.JSON(t, http.MethodGet, fmt.Sprintf("/api/users/%d/course/999/progress", f.student.ID), nil, f.token)
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t, 4)

	empty := models.Course{Title: "No lessons"}
	require.NoError(t, f.env.DB.Create(&empty).Error)

	require.Equal(t, http.StatusOK, f.enroll(t, f.course.ID).Status)
	// enrollment order is by time; keep the second one strictly later
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, http.StatusOK, f.enroll(t, empty.ID).Status)

	require.Equal(t, http.StatusOK, f.mark(t, f.lessons[0].ID, true).Status)

	resp := f.env.JSON(t, http.MethodGet, fmt.Sprintf("/api/users/%d/dashboard", f.student.ID), nil, f.token)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))

	var dashboard []models.DashboardCourse
	resp.Decode(t, &dashboard)
	require.Len(t, dashboard, 2)

	assert.Equal(t, empty.ID, dashboard[0].ID)
	assert.Equal(t, int64(0), dashboard[0].TotalLessons)
	assert.Equal(t, 0, dashboard[0].Progress)

	assert.Equal(t, f.course.ID, dashboard[1].ID)
	assert.Equal(t, "Course", dashboard[1].Title)
	assert.Equal(t, int64(4), dashboard[1].TotalLessons)
	assert.Equal(t, int64(1), dashboard[1].CompletedLessons)
	assert.Equal(t, 25, dashboard[1].Progress)
	assert.False(t, dashboard[1].EnrolledAt.IsZero())
}

func TestDashboardEmpty(t *testing.T) {
	f := newFixture(t, 1)

	resp := f.env.JSON(t, http.MethodGet, fmt.Sprintf("/api/users/%d/dashboard", f.student.ID), nil, f.token)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "[]", string(resp.Body))
}

func TestProgressRoutesAreScopedToTheSessionUser(t *testing.T) {
	f := newFixture(t, 1)
	other := f.env.CreateUser(t, "Ivy", "ivy@lms.test", models.RoleStudent, true)
	otherPath := fmt.Sprintf("/api/users/%d/dashboard", other.ID)

	resp := f.env.JSON(t, http.MethodGet, otherPath, nil, f.token)
	assert.Equal(t, http.StatusForbidden, resp.Status)

	resp = f.env.JSON(t, http.MethodGet, otherPath, nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Status)

	resp = f.env.JSON(t, http.MethodPost, "/api/enroll", map[string]uint{"user_id": other.ID, "course_id": f.course.ID}, f.token)
	assert.Equal(t, http.StatusForbidden, resp.Status)

	body := map[string]interface{}{"user_id": other.ID, "lesson_id": f.lessons[0].ID, "completed": true}
	resp = f.env.JSON(t, http.MethodPost, "/api/progress", body, f.token)
	assert.Equal(t, http.StatusForbidden, resp.Status)

	// admins may act for anyone
	admin := f.env.AdminToken(t)
	resp = f.env.JSON(t, http.MethodPost, "/api/enroll", map[string]uint{"user_id": other.ID, "course_id": f.course.ID}, admin)
	assert.Equal(t, http.StatusOK, resp.Status)
	resp = f.env.JSON(t, http.MethodGet, otherPath, nil, admin)
	assert.Equal(t, http.StatusOK, resp.Status)
}
