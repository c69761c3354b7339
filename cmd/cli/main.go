package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/limaJavier/labscheduling/pkg/csvio"
	"github.com/limaJavier/labscheduling/pkg/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	exitUnplaced = 3
)

var validFormats = []string{"json", "csv"}

// Output is the JSON document written by the CLI
type Output struct {
	WeekLabel string              `json:"weekLabel"`
	Schedule  model.Schedule      `json:"schedule"`
	Unplaced  []model.Course      `json:"unplaced"`
	Summary   model.CourseSummary `json:"summary"`
}

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the course roster; \".csv\" files are read as CSV, anything else as JSON")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	formatPtr := flag.String("format", "json", "Output format. Allowed values are: \"json\" and \"csv\", where \"json\" is the default")
	weekStartPtr := flag.Int("week-start", model.DefaultBaseWeekDate, "Day-of-month of the base week's first day")
	weekOffsetPtr := flag.Int("week-offset", 0, "Number of weeks away from the base week")
	departmentPtr := flag.String("department", model.AllDepartments, "Department whose sessions are shown; \"all\" shows every session")
	configPtr := flag.String("config", "", "Path to a YAML week shape; if empty, the Monday-to-Friday default is used")
	delimiterPtr := flag.String("delimiter", ",", "Field delimiter of CSV rosters")
	verbosePtr := flag.Bool("verbose", false, "Log every placement")
	flag.Parse()
	format := strings.ToLower(*formatPtr)

	logger := newLogger(*verbosePtr)
	defer logger.Sync()

	// Validate arguments
	if !slices.Contains(validFormats, format) {
		logger.Fatal("invalid output format", zap.String("format", format))
	} else if *filePathPtr == "" {
		logger.Fatal("an input file must be specified")
	} else if len([]rune(*delimiterPtr)) != 1 {
		logger.Fatal("delimiter must be a single character", zap.String("delimiter", *delimiterPtr))
	}

	shape := model.DefaultWeekShape()
	if *configPtr != "" {
		var err error
		if shape, err = model.LoadWeekShape(*configPtr); err != nil {
			logger.Fatal("cannot load week shape", zap.Error(err))
		}
	}

	// Extract input
	courses, err := readCourses(*filePathPtr, []rune(*delimiterPtr)[0], shape)
	if err != nil {
		logger.Fatal("cannot read course roster", zap.Error(err))
	}

	// Build schedule
	weekStartDate := model.WeekStartDate(*weekStartPtr, *weekOffsetPtr)
	scheduler := model.NewGreedyScheduler(shape, logger)
	schedule, unplaced := scheduler.Build(courses, weekStartDate)

	// Verify schedule correctness
	if !scheduler.Verify(schedule, courses) {
		logger.Fatal("generated schedule failed verification")
	}

	department := model.NormalizeDepartment(*departmentPtr, shape.Departments)
	schedule = model.FilterScheduleByDepartment(schedule, department)

	content, err := render(format, Output{
		WeekLabel: model.WeekRangeLabel(model.DefaultBaseWeekMonth, model.DefaultBaseWeekYear, weekStartDate, len(shape.Days)),
		Schedule:  schedule,
		Unplaced:  model.FilterCoursesByDepartment(unplaced, department),
		Summary:   model.SummarizeCourses(courses, department),
	})
	if err != nil {
		logger.Fatal("cannot build output", zap.Error(err))
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if *outFilePathPtr == "" {
		fmt.Println(content)
	} else if err := os.WriteFile(*outFilePathPtr, []byte(content), 0666); err != nil {
		logger.Fatal("cannot write output file", zap.Error(err))
	}

	if len(unplaced) > 0 {
		logger.Warn("some courses were not scheduled", zap.Strings("courses", lo.Map(unplaced, func(course model.Course, _ int) string {
			return course.CourseCode
		})))
		logger.Sync()
		os.Exit(exitUnplaced)
	}
}

func newLogger(verbose bool) *zap.Logger {
	config := zap.NewProductionConfig()
	if verbose {
		config = zap.NewDevelopmentConfig()
	}
	// Standard Output is reserved for the schedule
	config.OutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

// Reads, validates and normalizes the roster at path
func readCourses(path string, delimiter rune, shape model.WeekShape) ([]model.Course, error) {
	var raws []model.RawCourse
	var err error
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		raws, err = csvio.LoadCourses(path, delimiter)
	} else {
		var file *os.File
		if file, err = os.Open(path); err != nil {
			return nil, fmt.Errorf("cannot open course file: %w", err)
		}
		defer file.Close()
		raws, err = model.RawCoursesFromReader(file)
	}
	if err != nil {
		return nil, err
	}

	courses := make([]model.Course, 0, len(raws))
	for i, raw := range raws {
		if err := model.ValidateCourse(raw, shape); err != nil {
			return nil, fmt.Errorf("course #%d: %w", i, err)
		}
		course := model.NormalizeCourse(raw)
		course.Department = model.NormalizeDepartment(course.Department, shape.Departments)
		courses = append(courses, course)
	}
	return courses, nil
}

func render(format string, output Output) (string, error) {
	if format == "csv" {
		return csvio.ExportScheduleString(output.Schedule)
	}
	bytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
