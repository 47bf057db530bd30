package core

import (
	"time"

	"github.com/arjaygg/teampulse/core/timeline"
	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// wipMetric reconstructs active ownership periods per item and counts, for
// each calendar day in the analysis window, how many items each member had
// concurrently in flight. Still-open periods cover through now.
func wipMetric(ds *Dataset, cfg *contract.Config, now time.Time) *schema.WIPResult {
	filter := newMemberFilter(cfg)

	var periods []timeline.OwnershipPeriod
	for _, item := range ds.Items {
		for _, p := range timeline.OwnershipPeriods(item, ds.ByItem[item.ID], cfg.Policy) {
			if filter.qualifies(p.Member) {
				periods = append(periods, p)
			}
		}
	}

	start := dayStart(cfg.StartTime)
	end := dayStart(cfg.EndTime)

	type acc struct {
		total        int
		days         int
		max          int
		overModerate int
		overHigh     int
		distribution map[int]int
	}
	byMember := make(map[string]*acc)

	var peakDay string
	peakWIP := 0
	daysTeamAvgOver := 0

	for day := start; !day.After(end); day = day.Add(24 * time.Hour) {
		// Count by the middle of the day so a period opening at 09:00
		// covers the day it opened.
		probe := day.Add(12 * time.Hour)
		counts := make(map[string]int)
		for _, p := range periods {
			if p.Covers(probe, now) {
				counts[p.Member]++
			}
		}

		teamTotal := 0
		for member, count := range counts {
			teamTotal += count
			a := byMember[member]
			if a == nil {
				a = &acc{distribution: make(map[int]int)}
				byMember[member] = a
			}
			a.total += count
			a.distribution[count]++
			if count > a.max {
				a.max = count
			}
			if count > cfg.Policy.WIPModerateThreshold {
				a.overModerate++
			}
			if count > cfg.Policy.WIPHighThreshold {
				a.overHigh++
			}
		}
		// Members accrue a day whether loaded or idle once they have
		// appeared, so idle days pull the average down.
		for _, a := range byMember {
			a.days++
		}

		if teamTotal > peakWIP {
			peakWIP = teamTotal
			peakDay = schema.DayKey(day)
		}
		if len(counts) > 0 && float64(teamTotal)/float64(len(counts)) > float64(cfg.Policy.WIPModerateThreshold) {
			daysTeamAvgOver++
		}
	}

	result := &schema.WIPResult{
		Members:          make(map[string]schema.MemberWIP, len(byMember)),
		PeakDay:          peakDay,
		PeakWIP:          peakWIP,
		DaysTeamAvgOver3: daysTeamAvgOver,
		RangeStart:       schema.DayKey(start),
		RangeEnd:         schema.DayKey(end),
	}
	for member, a := range byMember {
		avg := 0.0
		if a.days > 0 {
			avg = float64(a.total) / float64(a.days)
		}
		result.Members[member] = schema.MemberWIP{
			AvgWIP:           roundTo(avg, 2),
			MaxWIP:           a.max,
			DaysOverModerate: a.overModerate,
			DaysOverHigh:     a.overHigh,
			Distribution:     a.distribution,
		}
	}
	return result
}

// dayStart truncates a timestamp to midnight UTC.
func dayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
