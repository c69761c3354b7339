package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/limaJavier/labscheduling/internal/registry"
	"github.com/limaJavier/labscheduling/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type courseList struct {
	Courses []model.Course      `json:"courses"`
	Summary model.CourseSummary `json:"summary"`
}

const chemistryCourse = `{"courseCode": "CHEM101", "courseName": "General Chemistry", "labName": "Chem Lab", "labHoursPerWeek": "2", "studentCount": "30", "instructor": "Dr. Smith", "department": "Chemistry", "preferredDay": "Wednesday", "preferredTime": "14:00"}`
const biologyCourse = `{"courseCode": "BIO101", "courseName": "Cell Biology", "labName": "Bio Lab", "labHoursPerWeek": 4, "studentCount": 25, "instructor": "Dr. Lee", "department": "bio", "preferredDay": "any-day", "preferredTime": "any-time"}`

func newTestApp() *fiber.App {
	shape := model.DefaultWeekShape()
	shape.Departments = map[string]string{"bio": "Biology"}
	return newApp(newServer(registry.New(shape, nil), model.DefaultBaseWeekDate, nil))
}

func send(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("Content-Type", "application/json")
	response, err := app.Test(request, -1)
	require.NoError(t, err)
	return response
}

func decode[T any](t *testing.T, response *http.Response) envelope[T] {
	defer response.Body.Close()
	var body envelope[T]
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	response := send(t, newTestApp(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.NotEmpty(t, response.Header.Get("X-Request-ID"))
}

func TestAddListAndRemoveCourses(t *testing.T) {
	//** Arrange
	app := newTestApp()

	//** Act
	created := send(t, app, http.MethodPost, "/courses", chemistryCourse)
	require.Equal(t, http.StatusCreated, created.StatusCode)
	chemistry := decode[model.Course](t, created)
	require.Equal(t, http.StatusCreated, send(t, app, http.MethodPost, "/courses", biologyCourse).StatusCode)

	all := decode[courseList](t, send(t, app, http.MethodGet, "/courses", ""))
	biology := decode[courseList](t, send(t, app, http.MethodGet, "/courses?department=bio", ""))
	removed := send(t, app, http.MethodDelete, "/courses/"+chemistry.Data.Id, "")
	missing := send(t, app, http.MethodDelete, "/courses/"+chemistry.Data.Id, "")
	remaining := decode[courseList](t, send(t, app, http.MethodGet, "/courses?department=all", ""))

	//** Assert
	_, err := uuid.Parse(chemistry.Data.Id)
	assert.NoError(t, err)
	assert.Equal(t, 2.0, chemistry.Data.LabHoursPerWeek)
	assert.Equal(t, 30, chemistry.Data.StudentCount)

	assert.Len(t, all.Data.Courses, 2)
	assert.Equal(t, model.CourseSummary{TotalCourses: 2, TotalStudents: 55, TotalLabHours: 6}, all.Data.Summary)
	require.Len(t, biology.Data.Courses, 1)
	assert.Equal(t, "Biology", biology.Data.Courses[0].Department)

	assert.Equal(t, http.StatusOK, removed.StatusCode)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	assert.False(t, decode[any](t, missing).Success)
	require.Len(t, remaining.Data.Courses, 1)
	assert.Equal(t, "BIO101", remaining.Data.Courses[0].CourseCode)
}

func TestAddCourseRejectsInvalidInput(t *testing.T) {
	app := newTestApp()

	assert.Equal(t, http.StatusBadRequest, send(t, app, http.MethodPost, "/courses", "{not json").StatusCode)
	assert.Equal(t, http.StatusBadRequest, send(t, app, http.MethodPost, "/courses", strings.Replace(chemistryCourse, `"2"`, `"8"`, 1)).StatusCode)
	assert.Equal(t, http.StatusBadRequest, send(t, app, http.MethodPost, "/courses", strings.Replace(chemistryCourse, "Wednesday", "Funday", 1)).StatusCode)
	assert.Equal(t, http.StatusBadRequest, send(t, app, http.MethodPost, "/courses", strings.Replace(chemistryCourse, "14:00", "12:00", 1)).StatusCode)

	assert.Empty(t, decode[courseList](t, send(t, app, http.MethodGet, "/courses", "")).Data.Courses)
}

func TestGetSchedule(t *testing.T) {
	//** Arrange
	app := newTestApp()
	send(t, app, http.MethodPost, "/courses", chemistryCourse)
	send(t, app, http.MethodPost, "/courses", biologyCourse)

	//** Act
	week := decode[ScheduleResponse](t, send(t, app, http.MethodGet, "/schedule", ""))
	nextWeek := decode[ScheduleResponse](t, send(t, app, http.MethodGet, "/schedule?weekOffset=1&department=Chemistry", ""))
	invalid := send(t, app, http.MethodGet, "/schedule?weekOffset=next", "")

	//** Assert
	assert.Equal(t, "December 9 - 13, 2024", week.Data.WeekLabel)
	require.Len(t, week.Data.Schedule, 5)
	assert.Equal(t, 2, week.Data.Schedule.SlotCount())
	require.Len(t, week.Data.Schedule[2].Slots, 1)
	assert.Equal(t, model.PlacedSlot{
		Time: "14:00", EndTime: "16:00", Lab: "Chem Lab", Class: "CHEM101",
		CourseName: "General Chemistry", Instructor: "Dr. Smith", Department: "Chemistry", StudentCount: 30,
	}, week.Data.Schedule[2].Slots[0])
	assert.Empty(t, week.Data.Unplaced)

	assert.Equal(t, 16, nextWeek.Data.WeekStartDate)
	assert.Equal(t, 16, nextWeek.Data.Schedule[0].Date)
	assert.Equal(t, "Chemistry", nextWeek.Data.Department)
	assert.Equal(t, 1, nextWeek.Data.Schedule.SlotCount())
	assert.Equal(t, model.CourseSummary{TotalCourses: 1, TotalStudents: 30, TotalLabHours: 2}, nextWeek.Data.Summary)

	assert.Equal(t, http.StatusBadRequest, invalid.StatusCode)
}

func TestGenerateSchedule(t *testing.T) {
	//** Arrange
	app := newTestApp()
	body := `{"weekStartDate": 2, "department": "all", "courses": [` + chemistryCourse + `,` + biologyCourse + `]}`

	//** Act
	response := send(t, app, http.MethodPost, "/schedule/generate", body)
	generated := decode[ScheduleResponse](t, response)
	bareArray := decode[ScheduleResponse](t, send(t, app, http.MethodPost, "/schedule/generate", `[`+biologyCourse+`]`))
	invalid := send(t, app, http.MethodPost, "/schedule/generate", `{"courses": [{"courseCode": "X"}]}`)

	//** Assert
	assert.True(t, generated.Success)
	assert.Equal(t, "December 2 - 6, 2024", generated.Data.WeekLabel)
	assert.Equal(t, 2, generated.Data.Schedule.SlotCount())
	assert.Equal(t, model.DefaultBaseWeekDate, bareArray.Data.WeekStartDate)
	assert.Equal(t, 1, bareArray.Data.Schedule.SlotCount())
	assert.Equal(t, http.StatusBadRequest, invalid.StatusCode)

	// Stateless: the registry stays empty
	assert.Empty(t, decode[courseList](t, send(t, app, http.MethodGet, "/courses", "")).Data.Courses)
}

func TestSeedRegistry(t *testing.T) {
	directory := t.TempDir()
	jsonPath := filepath.Join(directory, "courses.json")
	csvPath := filepath.Join(directory, "courses.csv")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[`+chemistryCourse+`]`), 0644))
	require.NoError(t, os.WriteFile(csvPath, []byte("course_code,course_name,lab_name,lab_hours_per_week,student_count,instructor,department\nPHY101,Physics,Physics Lab,2,10,Dr. Brown,Physics\n"), 0644))

	courses := registry.New(model.DefaultWeekShape(), nil)
	require.NoError(t, seedRegistry(courses, jsonPath))
	require.NoError(t, seedRegistry(courses, csvPath))
	assert.Error(t, seedRegistry(courses, filepath.Join(directory, "missing.json")))

	assert.Len(t, courses.List(""), 2)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("BASE_WEEK_DATE", "16")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, 16, config.BaseWeekDate)
	_, err = newLogger(config.LogLevel)
	assert.NoError(t, err)

	t.Setenv("BASE_WEEK_DATE", "soon")
	_, err = LoadConfig()
	assert.Error(t, err)
	_, err = newLogger("loud")
	assert.Error(t, err)
}

func TestGenerateScheduleWeekStartDate(t *testing.T) {
	app := newTestApp()
	courses := `"courses": [` + chemistryCourse + `]`

	t.Run("Accepts a date given as a string", func(t *testing.T) {
		response := send(t, app, http.MethodPost, "/schedule/generate", `{"weekStartDate": "16", `+courses+`}`)
		require.Equal(t, http.StatusOK, response.StatusCode)

		generated := decode[ScheduleResponse](t, response)
		assert.Equal(t, 16, generated.Data.WeekStartDate)
		assert.Equal(t, "December 16 - 20, 2024", generated.Data.WeekLabel)
		assert.Equal(t, 16, generated.Data.Schedule[0].Date)
	})

	t.Run("Rejects a date that is not a number", func(t *testing.T) {
		response := send(t, app, http.MethodPost, "/schedule/generate", `{"weekStartDate": "next week", `+courses+`}`)

		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		assert.False(t, decode[any](t, response).Success)
	})

	t.Run("Rejects a date of the wrong shape", func(t *testing.T) {
		response := send(t, app, http.MethodPost, "/schedule/generate", `{"weekStartDate": [16], `+courses+`}`)

		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	})
}
