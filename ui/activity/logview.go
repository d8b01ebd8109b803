package activity

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"gioui.org/io/clipboard"
	"gioui.org/layout"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/nxadm/tail"

	"github.com/ltp456/uwallet/app"
	"github.com/ltp456/uwallet/ui/load"
)

const (
	LogID app.ActivityID = "log"

	// logOffset is how much of a large log file is shown.
	logOffset = 24000
	// maxLogLines bounds the lines kept in memory.
	maxLogLines = 500
)

// LogActivity follows the log file while it is shown.
type LogActivity struct {
	*app.GenericActivity
	load *load.Load

	mtx   sync.Mutex
	lines []string
	tail  *tail.Tail

	backBtn widget.Clickable
	copyBtn widget.Clickable
	logList widget.List
}

func NewLogActivity(l *load.Load) *LogActivity {
	la := &LogActivity{
		GenericActivity: app.NewGenericActivity(LogID),
		load:            l,
	}
	la.logList.Axis = layout.Vertical
	la.logList.ScrollToEnd = true
	return la
}

func (la *LogActivity) OnResume(app.State) {
	if err := la.watchLogs(); err != nil {
		la.setLines([]string{err.Error()})
	}
}

func (la *LogActivity) OnPause(app.State) {
	la.stopWatching()
}

// Lines returns the log lines read so far.
func (la *LogActivity) Lines() []string {
	la.mtx.Lock()
	defer la.mtx.Unlock()
	return append([]string(nil), la.lines...)
}

func (la *LogActivity) setLines(lines []string) {
	la.mtx.Lock()
	la.lines = lines
	la.mtx.Unlock()
}

func (la *LogActivity) watchLogs() error {
	la.stopWatching()
	la.setLines(nil)

	fi, err := os.Stat(la.load.LogFile)
	if err != nil {
		return fmt.Errorf("unable to open log file: %v", err)
	}

	var offset int64
	if size := fi.Size(); size > logOffset*2 {
		offset = size - logOffset
	}

	pollLogs := runtime.GOOS == "windows"
	t, err := tail.TailFile(la.load.LogFile, tail.Config{
		Follow:   true,
		Poll:     pollLogs,
		Location: &tail.SeekInfo{Offset: offset},
		Logger:   tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("unable to tail log file: %v", err)
	}

	la.mtx.Lock()
	la.tail = t
	la.mtx.Unlock()

	la.load.Executor.Go("tail log", func(ctx context.Context) error {
		skip := offset > 0
		for {
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-t.Lines:
				if !ok {
					return nil
				}
				// The first line might be truncated.
				if skip {
					skip = false
					continue
				}
				la.appendLine(line.Text)
				la.load.Navigator.Invalidate()
			}
		}
	})
	return nil
}

func (la *LogActivity) appendLine(line string) {
	la.mtx.Lock()
	defer la.mtx.Unlock()
	la.lines = append(la.lines, line)
	if len(la.lines) > maxLogLines {
		la.lines = la.lines[len(la.lines)-maxLogLines:]
	}
}

func (la *LogActivity) stopWatching() {
	la.mtx.Lock()
	t := la.tail
	la.tail = nil
	la.mtx.Unlock()
	if t == nil {
		return
	}
	if err := t.Stop(); err != nil {
		log.Debugf("Stopping log tail: %v", err)
	}
	t.Cleanup()
}

func (la *LogActivity) Layout(gtx C, _ app.State) D {
	if la.backBtn.Clicked() {
		la.load.Navigate(SettingID)
	}
	lines := la.Lines()
	if la.copyBtn.Clicked() {
		clipboard.WriteOp{Text: strings.Join(lines, "\n")}.Add(gtx.Ops)
	}

	th := la.load.Theme
	return layout.UniformInset(pagePadding).Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				return layout.Inset{Bottom: itemSpacing}.Layout(gtx, func(gtx C) D {
					return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
						layout.Rigid(material.Button(th, &la.backBtn, "Back").Layout),
						layout.Rigid(layout.Spacer{Width: itemSpacing}.Layout),
						layout.Flexed(1, material.H5(th, "Log").Layout),
						layout.Rigid(material.Button(th, &la.copyBtn, "Copy").Layout),
					)
				})
			}),
			layout.Flexed(1, func(gtx C) D {
				return material.List(th, &la.logList).Layout(gtx, len(lines), func(gtx C, i int) D {
					return material.Caption(th, lines[i]).Layout(gtx)
				})
			}),
		)
	})
}
