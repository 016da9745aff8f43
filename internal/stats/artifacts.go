package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"feedsim/internal/model"
)

const runIndexFile = "run_index.json"

// RunArtifacts is everything written under runs/<run-id>/ for one simulation.
type RunArtifacts struct {
	Config      model.RunConfigRecord  `json:"config"`
	Users       []model.UserRecord     `json:"users"`
	Posts       []model.PostRecord     `json:"posts"`
	Summary     model.RunSummaryRecord `json:"summary"`
	TopPosts    []RankedPost           `json:"top_posts,omitempty"`
	BottomPosts []RankedPost           `json:"bottom_posts,omitempty"`
}

// RunIndexEntry is the per-run row of the runs directory index.
type RunIndexEntry struct {
	RunID          string  `json:"run_id"`
	NumUsers       int     `json:"num_users"`
	PostsPerUser   int     `json:"posts_per_user"`
	UpdateRule     string  `json:"update_rule"`
	Seed           int64   `json:"seed"`
	EngagementRate float64 `json:"engagement_rate"`
	CreatedAtUTC   string  `json:"created_at_utc"`
}

// WriteRunArtifacts writes the run directory and returns its path.
func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Config.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, artifacts.Config.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "run.json"), artifacts.Config); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "users.json"), artifacts.Users); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "posts.json"), artifacts.Posts); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "summary.json"), artifacts.Summary); err != nil {
		return "", err
	}
	if len(artifacts.TopPosts) > 0 {
		if err := writeJSON(filepath.Join(runDir, "top_posts.json"), artifacts.TopPosts); err != nil {
			return "", err
		}
	}
	if len(artifacts.BottomPosts) > 0 {
		if err := writeJSON(filepath.Join(runDir, "bottom_posts.json"), artifacts.BottomPosts); err != nil {
			return "", err
		}
	}

	return runDir, nil
}

// AppendRunIndex inserts or replaces the entry for its run id.
func AppendRunIndex(baseDir string, entry RunIndexEntry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	index, err := ListRunIndex(baseDir)
	if err != nil {
		return err
	}

	for i := range index {
		if index[i].RunID == entry.RunID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, runIndexFile), index)
		}
	}

	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, runIndexFile), index)
}

// ListRunIndex returns index entries, newest first.
func ListRunIndex(baseDir string) ([]RunIndexEntry, error) {
	path := filepath.Join(baseDir, runIndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunIndexEntry{}, nil
		}
		return nil, err
	}

	var entries []RunIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	type indexedEntry struct {
		entry RunIndexEntry
		idx   int
	}
	indexed := make([]indexedEntry, len(entries))
	for i := range entries {
		indexed[i] = indexedEntry{entry: entries[i], idx: i}
	}
	sort.Slice(indexed, func(i, j int) bool {
		if indexed[i].entry.CreatedAtUTC == indexed[j].entry.CreatedAtUTC {
			// Prefer later appended entries for equal timestamps.
			return indexed[i].idx > indexed[j].idx
		}
		return indexed[i].entry.CreatedAtUTC > indexed[j].entry.CreatedAtUTC
	})

	sorted := make([]RunIndexEntry, 0, len(indexed))
	for _, item := range indexed {
		sorted = append(sorted, item.entry)
	}
	return sorted, nil
}

// ReadRunConfig loads runs/<run-id>/run.json if it exists.
func ReadRunConfig(baseDir, runID string) (model.RunConfigRecord, bool, error) {
	var cfg model.RunConfigRecord
	ok, err := readJSON(filepath.Join(baseDir, runID, "run.json"), &cfg)
	return cfg, ok, err
}

// ReadRunSummary loads runs/<run-id>/summary.json if it exists.
func ReadRunSummary(baseDir, runID string) (model.RunSummaryRecord, bool, error) {
	var summary model.RunSummaryRecord
	ok, err := readJSON(filepath.Join(baseDir, runID, "summary.json"), &summary)
	return summary, ok, err
}

// ReadRunUsers loads runs/<run-id>/users.json if it exists.
func ReadRunUsers(baseDir, runID string) ([]model.UserRecord, bool, error) {
	var users []model.UserRecord
	ok, err := readJSON(filepath.Join(baseDir, runID, "users.json"), &users)
	return users, ok, err
}

// ReadRunPosts loads runs/<run-id>/posts.json if it exists.
func ReadRunPosts(baseDir, runID string) ([]model.PostRecord, bool, error) {
	var posts []model.PostRecord
	ok, err := readJSON(filepath.Join(baseDir, runID, "posts.json"), &posts)
	return posts, ok, err
}

// ExportRunArtifacts copies one run's JSON files into outDir and adds flat
// users.csv and posts.csv renditions next to them.
func ExportRunArtifacts(baseDir, runID, outDir string) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("run id is required")
	}

	src := filepath.Join(baseDir, runID)
	if _, err := os.Stat(src); err != nil {
		return "", err
	}

	dst := filepath.Join(outDir, runID)
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return "", err
	}

	files := []string{"run.json", "users.json", "posts.json", "summary.json"}
	for _, file := range files {
		if err := copyFile(filepath.Join(src, file), filepath.Join(dst, file)); err != nil {
			return "", err
		}
	}
	for _, file := range []string{"top_posts.json", "bottom_posts.json"} {
		path := filepath.Join(src, file)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", err
		}
		if err := copyFile(path, filepath.Join(dst, file)); err != nil {
			return "", err
		}
	}

	users, ok, err := ReadRunUsers(baseDir, runID)
	if err != nil {
		return "", err
	}
	if ok {
		if err := writeUsersCSV(filepath.Join(dst, "users.csv"), users); err != nil {
			return "", err
		}
	}
	posts, ok, err := ReadRunPosts(baseDir, runID)
	if err != nil {
		return "", err
	}
	if ok {
		if err := writePostsCSV(filepath.Join(dst, "posts.csv"), posts); err != nil {
			return "", err
		}
	}

	return dst, nil
}

func writeUsersCSV(path string, users []model.UserRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"id", "name", "profile", "quality", "x", "y", "experiment_x", "experiment_y", "experiment_quality"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, user := range users {
		row := []string{
			strconv.Itoa(user.ID),
			user.Name,
			user.Profile,
			formatFloat(user.Quality),
			formatFloat(user.X),
			formatFloat(user.Y),
			formatFloat(user.ExperimentX),
			formatFloat(user.ExperimentY),
			formatFloat(user.ExperimentQuality),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writePostsCSV(path string, posts []model.PostRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"id", "user_id", "quality", "x", "y", "experiment_x", "experiment_y", "experiment_quality", "likes", "dislikes"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, post := range posts {
		row := []string{
			strconv.Itoa(post.ID),
			strconv.Itoa(post.UserID),
			formatFloat(post.Quality),
			formatFloat(post.X),
			formatFloat(post.Y),
			formatFloat(post.ExperimentX),
			formatFloat(post.ExperimentY),
			formatFloat(post.ExperimentQuality),
			strconv.Itoa(post.Likes),
			strconv.Itoa(post.Dislikes),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func readJSON(path string, value any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, value); err != nil {
		return false, err
	}
	return true, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// ValidateRunID rejects ids that would escape the runs directory.
func ValidateRunID(runID string) error {
	if strings.TrimSpace(runID) == "" {
		return fmt.Errorf("run id is required")
	}
	if strings.ContainsAny(runID, `/\`) || runID == "." || runID == ".." {
		return fmt.Errorf("run id must be a plain directory name: %s", runID)
	}
	return nil
}
