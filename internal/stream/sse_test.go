package stream

import (
	"strings"
	"testing"
)

func collectFrames(t *testing.T, input string) []Frame {
	t.Helper()
	var frames []Frame
	err := readFrames(strings.NewReader(input), 0, func(f Frame) bool {
		frames = append(frames, f)
		return true
	})
	if err != nil {
		t.Fatalf("readFrames() error: %v", err)
	}
	return frames
}

func TestReadFramesNamedEvents(t *testing.T) {
	input := "event: status\ndata: RUNNING\n\n" +
		"event: step\ndata: 1\n\n" +
		"event: fix\ndata: {\"file\":\"app.py\",\"line\":12}\n\n"

	frames := collectFrames(t, input)

	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if frames[0].Event != "status" || frames[0].Data != "RUNNING" {
		t.Errorf("unexpected first frame %+v", frames[0])
	}
	if frames[1].Event != "step" || frames[1].Data != "1" {
		t.Errorf("unexpected second frame %+v", frames[1])
	}
	if frames[2].Data != `{"file":"app.py","line":12}` {
		t.Errorf("unexpected fix payload %q", frames[2].Data)
	}
}

func TestReadFramesDefaultsToMessage(t *testing.T) {
	frames := collectFrames(t, "data: hello\n\n")
	if len(frames) != 1 || frames[0].Event != "message" {
		t.Fatalf("expected one message frame, got %+v", frames)
	}
}

func TestReadFramesMultiLineData(t *testing.T) {
	frames := collectFrames(t, "event: log\ndata: first\ndata: second\n\n")
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	if frames[0].Data != "first\nsecond" {
		t.Errorf("expected joined data, got %q", frames[0].Data)
	}
}

func TestReadFramesCRLFAndComments(t *testing.T) {
	input := ": ping\r\n" +
		"id: 7\r\n" +
		"event: step\r\n" +
		"retry: 3000\r\n" +
		"data:2\r\n" +
		"\r\n"

	frames := collectFrames(t, input)
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	f := frames[0]
	if f.Event != "step" || f.Data != "2" || f.ID != "7" {
		t.Errorf("unexpected frame %+v", f)
	}
}

func TestReadFramesSkipsEventWithoutData(t *testing.T) {
	frames := collectFrames(t, "event: status\n\nevent: step\ndata: 3\n\n")
	if len(frames) != 1 || frames[0].Event != "step" {
		t.Fatalf("expected only the step frame, got %+v", frames)
	}
}

func TestReadFramesIncompleteTrailingFrameDropped(t *testing.T) {
	frames := collectFrames(t, "event: step\ndata: 1\n\nevent: step\ndata: 2\n")
	if len(frames) != 1 {
		t.Fatalf("expected trailing frame without blank line to be dropped, got %+v", frames)
	}
}

func TestReadFramesStopEarly(t *testing.T) {
	var n int
	err := readFrames(strings.NewReader("data: a\n\ndata: b\n\n"), 0, func(Frame) bool {
		n++
		return false
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected emit to be called once, got %d", n)
	}
}

func TestReadFramesLineTooLong(t *testing.T) {
	long := "data: " + strings.Repeat("x", 200) + "\n\n"
	err := readFrames(strings.NewReader(long), 64, func(Frame) bool { return true })
	if err == nil {
		t.Fatal("expected error for oversized line")
	}
}
