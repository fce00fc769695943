package sequence

import (
	"maps"
	"slices"

	"github.com/charmbracelet/log"
)

// instance 一个正在运行的序列
type instance struct {
	seq       Sequence
	index     int     // 当前步骤下标
	elapsed   float64 // 当前步骤已用时间
	started   bool    // 当前步骤是否已调用 OnStart
	cancelled bool
	done      bool
}

// Handle 序列实例句柄，用于查询状态
type Handle struct {
	inst *instance
}

// Done 序列是否已完成（循环序列永不完成）
func (h Handle) Done() bool {
	return h.inst == nil || h.inst.done
}

// Cancelled 序列是否已被取消
func (h Handle) Cancelled() bool {
	return h.inst != nil && h.inst.cancelled
}

// Runner 序列调度器
//
// 取消是同步且立即生效的：Cancel 返回后，被取消实例的任何后续步骤都不会执行，
// 即使取消发生在另一个步骤的回调内部（同一次 Update 中）。
type Runner struct {
	tracks map[string][]*instance
	logger *log.Logger
}

// NewRunner 创建调度器
func NewRunner() *Runner {
	return &Runner{
		tracks: make(map[string][]*instance),
		logger: log.WithPrefix("Sequence"),
	}
}

// Run 在指定键上启动一个序列（与该键上已有序列并行运行）
func (r *Runner) Run(key string, seq Sequence) Handle {
	inst := &instance{seq: seq}
	r.tracks[key] = append(r.tracks[key], inst)
	r.logger.Debug("run", "key", key, "sequence", seq.Name, "steps", len(seq.Actions))
	return Handle{inst: inst}
}

// Cancel 取消指定键上的全部可取消序列
func (r *Runner) Cancel(key string) {
	insts := r.tracks[key]
	if len(insts) == 0 {
		return
	}
	kept := insts[:0]
	for _, inst := range insts {
		if inst.seq.Protected {
			kept = append(kept, inst)
			continue
		}
		inst.cancelled = true
		r.logger.Debug("cancel", "key", key, "sequence", inst.seq.Name)
	}
	if len(kept) == 0 {
		delete(r.tracks, key)
		return
	}
	r.tracks[key] = kept
}

// IsRunning 指定键上是否有未完成的序列
func (r *Runner) IsRunning(key string) bool {
	return len(r.tracks[key]) > 0
}

// Count 返回指定键上正在运行的序列数
func (r *Runner) Count(key string) int {
	return len(r.tracks[key])
}

// Update 推进所有序列 dt 秒
func (r *Runner) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	// 先拍快照：步骤回调中新启动的序列从下一帧开始推进
	type entry struct {
		key  string
		inst *instance
	}
	var snapshot []entry
	for _, key := range slices.Sorted(maps.Keys(r.tracks)) {
		for _, inst := range r.tracks[key] {
			snapshot = append(snapshot, entry{key: key, inst: inst})
		}
	}

	for _, e := range snapshot {
		advance(e.inst, dt)
	}

	for key, insts := range r.tracks {
		kept := insts[:0]
		for _, inst := range insts {
			if !inst.done && !inst.cancelled {
				kept = append(kept, inst)
			}
		}
		if len(kept) == 0 {
			delete(r.tracks, key)
		} else {
			r.tracks[key] = kept
		}
	}
}

// advance 推进单个实例，时间余量会传递给后续步骤
func advance(inst *instance, dt float64) {
	actions := inst.seq.Actions
	remaining := dt

	for !inst.done && !inst.cancelled {
		if inst.index >= len(actions) {
			if !inst.seq.Repeat || len(actions) == 0 {
				inst.done = true
				return
			}
			inst.index = 0
			// 零时长的循环序列每帧只执行一轮
			if inst.seq.TotalDuration() <= 0 {
				return
			}
		}

		action := actions[inst.index]
		if !inst.started {
			inst.started = true
			inst.elapsed = 0
			if action.OnStart != nil {
				action.OnStart()
			}
			if inst.cancelled {
				return
			}
		}

		left := action.Duration - inst.elapsed
		if left > remaining {
			inst.elapsed += remaining
			if action.OnProgress != nil && remaining > 0 {
				action.OnProgress(remaining / action.Duration)
			}
			return
		}

		if action.OnProgress != nil && left > 0 {
			action.OnProgress(left / action.Duration)
		}
		remaining -= left
		inst.index++
		inst.started = false
		inst.elapsed = 0
	}
}
