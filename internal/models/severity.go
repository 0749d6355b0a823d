package models

// Severity codes.
const (
	SeverityFatal   = 1
	SeveritySerious = 2
	SeveritySlight  = 3
)

// Severity labels.
const (
	LabelFatal   = "Fatal"
	LabelSerious = "Serious"
	LabelSlight  = "Slight"
)

// Time buckets.
const (
	BucketMorning   = "Morning"
	BucketAfternoon = "Afternoon"
	BucketEvening   = "Evening"
	BucketNight     = "Night"
)

// Unknown fills categorical fields that have no value.
const Unknown = "Unknown"

// SeverityLabels lists the labels in code order.
var SeverityLabels = []string{LabelFatal, LabelSerious, LabelSlight}

// TimeBuckets lists the buckets in chart order.
var TimeBuckets = []string{BucketMorning, BucketAfternoon, BucketEvening, BucketNight, Unknown}
