package main

import "sharecut/internal/timecode"

func timecodeLabel(seconds float64) string {
	return timecode.Format(seconds)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
