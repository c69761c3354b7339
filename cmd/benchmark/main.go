package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/labscheduling/pkg/model"
	"github.com/samber/lo"
)

const (
	resultsFile         = "benchmark_results.csv"
	MB          float64 = 1024 * 1024
)

type PreferenceMix int

const (
	noPreferences PreferenceMix = iota
	dayPreferences
	fullPreferences
)

var preferenceMixes = map[PreferenceMix]string{
	noPreferences:   "none",
	dayPreferences:  "day",
	fullPreferences: "full",
}

type Scenario struct {
	Courses int
	Labs    int
}

type BenchmarkResult struct {
	Scenario    string  `csv:"Scenario"`
	Preferences string  `csv:"Preferences"`
	Courses     int     `csv:"Courses"`
	Labs        int     `csv:"Labs"`
	Placed      int     `csv:"Placed"`
	Unplaced    int     `csv:"Unplaced"`
	Duration    int64   `csv:"Duration(us)"`
	Memory      float64 `csv:"Allocated(MB)"`
	Verified    bool    `csv:"Verified"`
}

func main() {
	scenariosPtr := flag.String("scenarios", "10x2,40x5,120x10,500x25,2000x100", "Comma separated scenarios, each written as \"<courses>x<labs>\"")
	seedPtr := flag.Int64("seed", 42, "Seed of the random roster generator")
	outPtr := flag.String("out", resultsFile, "Path of the CSV results file")
	flag.Parse()

	scenarios, err := parseScenarios(*scenariosPtr)
	if err != nil {
		log.Fatalf("invalid scenarios: %v", err)
	}

	shape := model.DefaultWeekShape()
	scheduler := model.NewGreedyScheduler(shape, nil)
	mixes := []PreferenceMix{noPreferences, dayPreferences, fullPreferences}
	results := make([]*BenchmarkResult, 0, len(scenarios)*len(mixes))

	for _, scenario := range scenarios {
		for _, mix := range mixes {
			fmt.Printf("Benchmarking scenario \"%vx%v\" with preferences \"%v\"\n", scenario.Courses, scenario.Labs, preferenceMixes[mix])

			random := rand.New(rand.NewSource(*seedPtr))
			courses := generateRoster(random, scenario, mix, shape)
			results = append(results, measure(scheduler, scenario, mix, courses))
		}
	}

	if err := toCsv(results, *outPtr); err != nil {
		log.Fatalf("cannot write results: %v", err)
	}
}

func parseScenarios(scenariosStr string) ([]Scenario, error) {
	scenarios := make([]Scenario, 0)
	for _, scenarioStr := range strings.Split(scenariosStr, ",") {
		scenario, err := parseScenario(strings.TrimSpace(scenarioStr))
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}

func parseScenario(scenarioStr string) (Scenario, error) {
	parts := strings.Split(strings.ToLower(scenarioStr), "x")
	if len(parts) != 2 {
		return Scenario{}, fmt.Errorf("unexpected scenario format: %v", scenarioStr)
	}
	courses, err := strconv.Atoi(parts[0])
	if err != nil || courses < 0 {
		return Scenario{}, fmt.Errorf("invalid course count in scenario %v", scenarioStr)
	}
	labs, err := strconv.Atoi(parts[1])
	if err != nil || labs <= 0 {
		return Scenario{}, fmt.Errorf("invalid lab count in scenario %v", scenarioStr)
	}
	return Scenario{Courses: courses, Labs: labs}, nil
}

// Builds a roster spread across the scenario's labs. Preferences, when the mix asks for them, are legal for the shape
func generateRoster(random *rand.Rand, scenario Scenario, mix PreferenceMix, shape model.WeekShape) []model.Course {
	departments := []string{"Chemistry", "Biology", "Physics", "Computer Science"}
	return lo.Map(lo.Range(scenario.Courses), func(i int, _ int) model.Course {
		course := model.Course{
			Id:              strconv.Itoa(i),
			CourseCode:      fmt.Sprintf("C%04d", i),
			CourseName:      fmt.Sprintf("Course %d", i),
			LabName:         fmt.Sprintf("LAB%d", random.Intn(scenario.Labs)),
			LabHoursPerWeek: float64(1 + random.Intn(6)),
			StudentCount:    1 + random.Intn(200),
			Instructor:      fmt.Sprintf("Instructor %d", random.Intn(scenario.Courses/3+1)),
			Department:      departments[random.Intn(len(departments))],
		}
		if mix >= dayPreferences {
			day := random.Intn(len(shape.Days))
			course.PreferredDay = lo.ToPtr(shape.Days[day].Full)
			if mix == fullPreferences {
				anchors := shape.Days[day].Anchors
				course.PreferredTime = lo.ToPtr(anchors[random.Intn(len(anchors))])
			}
		}
		return course
	})
}

func measure(scheduler model.Scheduler, scenario Scenario, mix PreferenceMix, courses []model.Course) *BenchmarkResult {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	start := time.Now()
	schedule, unplaced := scheduler.Build(courses, model.DefaultBaseWeekDate)
	duration := time.Since(start)

	runtime.ReadMemStats(&after)

	return &BenchmarkResult{
		Scenario:    fmt.Sprintf("%vx%v", scenario.Courses, scenario.Labs),
		Preferences: preferenceMixes[mix],
		Courses:     scenario.Courses,
		Labs:        scenario.Labs,
		Placed:      schedule.SlotCount(),
		Unplaced:    len(unplaced),
		Duration:    duration.Microseconds(),
		Memory:      float64(after.TotalAlloc-before.TotalAlloc) / MB,
		Verified:    scheduler.Verify(schedule, courses),
	}
}

func toCsv(results []*BenchmarkResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	return gocsv.MarshalFile(&results, file)
}
