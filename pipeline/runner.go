package pipeline

import (
	"fmt"
	"time"

	"github.com/venicegeo/bf-s2-datacube/util"
)

// BeginBuildJobMessage is sent on a channel to start a build job.
const BeginBuildJobMessage = "start"

// AbortBuildJobMessage is sent on a channel to stop an in-progress job.
const AbortBuildJobMessage = "stop"

var runStagesFunc = runStages

// Runner manages the state for a scheduled build job.
// Mainly useful when launching the job on an interval.
type Runner struct {
	options    Options
	statusChan chan chan string
}

// NewRunner initializes a new runner.
func NewRunner(options Options) *Runner {
	return &Runner{
		options:    options,
		statusChan: make(chan chan string, 10)}
}

type jobStats struct {
	StartTime      time.Time
	EndTime        time.Time
	CanceledByUser bool
	Err            error
}

func (stats *jobStats) String() string {
	outcome := "OK"
	if stats.CanceledByUser {
		outcome = "Canceled"
	}
	if stats.Err != nil {
		outcome = "Error: " + stats.Err.Error()
	}
	return fmt.Sprintf(`
	Start:	%v
	End:	%v
	Outcome:	%v
	`,
		stats.StartTime.Format("Mon Jan _2 15:04:05 2006"),
		stats.EndTime.Format("Mon Jan _2 15:04:05 2006"),
		outcome)
}

// BuildWhile performs the Build() task and waits for a channel.
// Note: this is blocking.
// The function will exit when messageChan is closed and any in-progress jobs
// complete. To close quickly, send AbortBuildJobMessage on messageChan before
// closing it.
func (runner *Runner) BuildWhile(messageChan <-chan string, maxTimeBetweenJobs time.Duration) {
	previousStatus := "\tNone"

	scheduleTimer := time.NewTimer(maxTimeBetweenJobs)
	nextScheduledStartTime := time.Now().Add(maxTimeBetweenJobs)

	var startJob bool
	for {
		startJob = false

		// Wait for a start message. Status is reported cooperatively, so deal
		// with any requests while we wait.
		select {
		case <-scheduleTimer.C:
			startJob = true
		case msg, ok := <-messageChan:
			if !ok {
				return //The message channel has been closed. Exit.
			}
			switch msg {
			case BeginBuildJobMessage:
				startJob = true
			default:
				//ignore this message. We only want ones for "begin".
			}
		case respChan := <-runner.statusChan:
			select {
			//Try to send a response on the provided channel.
			case respChan <- fmt.Sprintf("%v\nStatus: Sleeping until %v\nPrevious job:\n%v",
				time.Now().Format("Mon Jan _2 15:04:05 2006"),
				nextScheduledStartTime.Format("Mon Jan _2 15:04:05 2006"),
				previousStatus): //good
			default:
				//Could not send immediately. We'll ignore it.
			}
		}

		if startJob {
			previousStatus = runner.Build(messageChan)

			scheduleTimer.Stop()
			//Rather than track whether we've already received on the timer
			//channel, drain it in a general way.
		TimerDrainLoop:
			for {
				select {
				case <-scheduleTimer.C: //good, discard
				default:
					break TimerDrainLoop
				}
			}
			scheduleTimer.Reset(maxTimeBetweenJobs)
			nextScheduledStartTime = time.Now().Add(maxTimeBetweenJobs)
		}
	}
}

// GetStatus is a thread safe way to get information about the build operation.
func (runner *Runner) GetStatus() string {
	responseChan := make(chan string, 1) //Must have a buffer. The loop won't wait if it can't send.
	runner.statusChan <- responseChan
	return <-responseChan
}

// Build performs one full pipeline run, watching messageChan for an abort
// between stages.
func (runner *Runner) Build(messageChan <-chan string) string {
	stats := jobStats{StartTime: time.Now()}
	context := &Context{}

	util.LogAudit(context, util.LogAuditInput{
		Actor:    "pipeline/runner",
		Action:   "build",
		Actee:    runner.options.Workspace,
		Message:  "Starting scheduled cube build",
		Severity: util.INFO,
	})

	stats.CanceledByUser, stats.Err = runStagesFunc(runner.options, context, messageChan)
	stats.EndTime = time.Now()
	if stats.Err != nil {
		util.LogAlert(context, "Scheduled cube build failed: "+stats.Err.Error())
	}
	return stats.String()
}
