package service

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ── 节假日 ICS 解析器 ───────────────────────────────────────
//
// 职责：将标准 iCalendar (RFC 5545) 节假日日历解析为日期列表。
//
// 设计决策：
//   - 节假日日历通常使用全天事件（DTSTART;VALUE=DATE）
//   - 多天假期（DTEND 为排除式结束日）展开为逐日日期
//   - 带时间的 DTSTART 取其日期部分
//   - 重复日期去重；超出数量上限时截断，防止恶意文件撑爆事务
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize = 2 * 1024 * 1024 // 2MB
	icsMaxDates    = 400             // 一年节假日远小于此
)

// parseHolidayICS 解析 ICS 内容为去重后的节假日日期列表（UTC 零点）
func parseHolidayICS(reader io.Reader) ([]time.Time, error) {
	cal, err := ics.ParseCalendar(io.LimitReader(reader, icsMaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	seen := make(map[string]bool)
	var dates []time.Time

	for _, evt := range cal.Events() {
		start, ok := parseICSDate(evt, ics.ComponentPropertyDtStart)
		if !ok {
			continue
		}

		// DTEND 为排除式结束日；缺失时视为单天事件
		end, ok := parseICSDate(evt, ics.ComponentPropertyDtEnd)
		if !ok || !end.After(start) {
			end = start.AddDate(0, 0, 1)
		}

		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			key := d.Format(dateLayout)
			if seen[key] {
				continue
			}
			seen[key] = true
			dates = append(dates, d)
			if len(dates) >= icsMaxDates {
				return dates, nil
			}
		}
	}

	return dates, nil
}

// parseICSDate 解析事件的日期属性，统一取日期部分（UTC 零点）
func parseICSDate(evt *ics.VEvent, prop ics.ComponentProperty) (time.Time, bool) {
	p := evt.GetProperty(prop)
	if p == nil || p.Value == "" {
		return time.Time{}, false
	}

	// 依次尝试 全天事件 / UTC 时间 / 本地时间 三种取值格式
	for _, layout := range []string{"20060102", "20060102T150405Z", "20060102T150405"} {
		if t, err := time.Parse(layout, p.Value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
