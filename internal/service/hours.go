package service

import (
	"fmt"
	"time"

	"intern-dtr/backend/internal/model"
)

// ── 计时算法 ────────────────────────────────────────────────
//
// 职责：将一天的四个可选打卡时间 + 两个覆盖标记换算为当日工时。
//
// 规则：
//   - 节假日/周末标记任一为 true ⇒ 当日工时 0，忽略打卡时间
//   - 上午块 (am_in, am_out) 与下午块 (pm_in, pm_out) 独立计算后相加
//   - 块内：上班时间向上取整到 30 分钟边界，下班时间向下取整，
//     取整后 下班 ≤ 上班 视为无效块（计 0）
//   - 块内只打了一次卡 ⇒ 缺失的一端视同已打的一端，自然退化为 0
//
// 取整方向（上班向上、下班向下）丢弃 30 分钟整块之外的零散分钟；
// 按块而非按天取整，上午缺卡不会影响下午的结果。
// ─────────────────────────────────────────────────────────────

const clockLayout = "15:04"

// Postgres TIME 列的文本输出格式（带秒）
const clockSecondsLayout = "15:04:05"

// 30 分钟块
const blockMinutes = 30

// parseClockMinutes 解析打卡时间为当日分钟数（0-1439）
// 标准格式为 "HH:MM"；同时接受 "HH:MM:SS"（秒被丢弃），
// 防止列类型差异（time vs varchar）导致回读值静默计 0
func parseClockMinutes(s string) (int, bool) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		if t, err = time.Parse(clockSecondsLayout, s); err != nil {
			return 0, false
		}
	}
	return t.Hour()*60 + t.Minute(), true
}

// clockToWire 将存储值规范化为对外的 "HH:MM"；nil（未打卡）原样返回
func clockToWire(s *string) *string {
	if s == nil {
		return nil
	}
	min, ok := parseClockMinutes(*s)
	if !ok {
		return s
	}
	w := fmt.Sprintf("%02d:%02d", min/60, min%60)
	return &w
}

// roundUpToBlock 向上取整到 30 分钟边界（已在边界上则不变）
func roundUpToBlock(minutes int) int {
	if rem := minutes % blockMinutes; rem != 0 {
		return minutes + blockMinutes - rem
	}
	return minutes
}

// roundDownToBlock 向下取整到 30 分钟边界
func roundDownToBlock(minutes int) int {
	return minutes - minutes%blockMinutes
}

// blockHours 计算单个半日块的工时
// in/out 为存储值（已在写入边界校验过格式），nil 表示未打卡
func blockHours(in, out *string) float64 {
	if in == nil && out == nil {
		return 0
	}
	// 只打了一次卡：缺失端视同已打端
	if in == nil {
		in = out
	}
	if out == nil {
		out = in
	}

	inMin, ok := parseClockMinutes(*in)
	if !ok {
		return 0
	}
	outMin, ok := parseClockMinutes(*out)
	if !ok {
		return 0
	}

	start := roundUpToBlock(inMin)
	end := roundDownToBlock(outMin)
	if end <= start {
		return 0 // 取整后区间倒挂或塌缩
	}
	return float64(end-start) / 60.0
}

// computeDailyHours 计算一条打卡记录的当日工时
func computeDailyHours(record *model.DailyTimeRecord) float64 {
	if record.IsHoliday || record.IsWeekend {
		return 0 // 标记优先于打卡时间
	}
	return blockHours(record.AmIn, record.AmOut) + blockHours(record.PmIn, record.PmOut)
}
