package ffmpeg

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

var questionVideoPattern = regexp.MustCompile(`^question-(\d+)\.mp4$`)

// DiscoverClips returns the joinable clips in a quiz video directory, in
// playback order: intro.mp4 when present, question-N.mp4 sorted by N, then
// outro.mp4 when present.
func DiscoverClips(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("discover clips: %w", err)
	}

	type numbered struct {
		ordinal int
		path    string
	}
	var questions []numbered
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := questionVideoPattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		ordinal, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		questions = append(questions, numbered{ordinal: ordinal, path: filepath.Join(dir, entry.Name())})
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("discover clips: no question videos in %s", dir)
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ordinal < questions[j].ordinal })

	var clips []string
	if intro := filepath.Join(dir, "intro.mp4"); fileExists(intro) {
		clips = append(clips, intro)
	}
	for _, q := range questions {
		clips = append(clips, q.path)
	}
	if outro := filepath.Join(dir, "outro.mp4"); fileExists(outro) {
		clips = append(clips, outro)
	}
	return clips, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
