package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/glabrego/reachon-admin/internal/media"
)

// Recorder captures microphone audio by running a command line recorder
// that writes a WAV file until interrupted.
type Recorder struct {
	name string
	args func(out string) []string
	dir  string
}

// DetectRecorder picks the first recorder available on PATH.
func DetectRecorder(dir string) (*Recorder, error) {
	for _, candidate := range recorderCandidates(runtime.GOOS) {
		path, err := exec.LookPath(candidate.name)
		if err != nil {
			continue
		}
		return &Recorder{name: path, args: candidate.args, dir: dir}, nil
	}
	return nil, errors.New("no audio recorder found (install arecord, sox or ffmpeg)")
}

type recorderCandidate struct {
	name string
	args func(out string) []string
}

func recorderCandidates(goos string) []recorderCandidate {
	ffmpegInput := []string{"-f", "pulse", "-i", "default"}
	switch goos {
	case "darwin":
		ffmpegInput = []string{"-f", "avfoundation", "-i", ":0"}
	case "windows":
		ffmpegInput = []string{"-f", "dshow", "-i", "audio=default"}
	}
	return []recorderCandidate{
		{name: "arecord", args: func(out string) []string {
			return []string{"-q", "-f", "cd", "-t", "wav", out}
		}},
		{name: "rec", args: func(out string) []string {
			return []string{"-q", out}
		}},
		{name: "ffmpeg", args: func(out string) []string {
			args := append([]string{"-loglevel", "error", "-y"}, ffmpegInput...)
			return append(args, out)
		}},
	}
}

func (r *Recorder) Open() (media.Stream, error) {
	f, err := os.CreateTemp(r.dir, "reachon-recording-*.wav")
	if err != nil {
		return nil, fmt.Errorf("create recording file: %w", err)
	}
	out := f.Name()
	_ = f.Close()

	cmd := exec.Command(r.name, r.args(out)...)
	if err := cmd.Start(); err != nil {
		_ = os.Remove(out)
		return nil, fmt.Errorf("start %s: %w", filepath.Base(r.name), err)
	}
	return &recording{cmd: cmd, out: out}, nil
}

type recording struct {
	cmd  *exec.Cmd
	out  string
	done bool
}

// Finish interrupts the recorder so it flushes the WAV header, then loads
// the file.
func (r *recording) Finish() (media.Blob, error) {
	if r.done {
		return media.Blob{}, errors.New("recording already finished")
	}
	r.done = true
	defer os.Remove(r.out)

	if err := r.cmd.Process.Signal(os.Interrupt); err != nil {
		_ = r.cmd.Process.Kill()
	}
	_ = r.cmd.Wait()

	data, err := os.ReadFile(r.out)
	if err != nil {
		return media.Blob{}, fmt.Errorf("read recording: %w", err)
	}
	if len(data) == 0 {
		return media.Blob{}, errors.New("recorder produced no audio")
	}
	return media.Blob{
		Name:        "recording.wav",
		ContentType: "audio/wav",
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

func (r *recording) Abort() error {
	if r.done {
		return nil
	}
	r.done = true
	defer os.Remove(r.out)
	if err := r.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("stop recorder: %w", err)
	}
	_ = r.cmd.Wait()
	return nil
}
