package notes

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	totalPattern     = regexp.MustCompile(`(?i)total_products\s*=\s*(\d+)`)
	completedPattern = regexp.MustCompile(`(?i)completed_products\s*=\s*(\d+)`)
	originPattern    = regexp.MustCompile(`(?i)origin_task_id\s*=\s*([0-9a-f-]+)`)
	koTabPattern     = regexp.MustCompile(`(?i)ko_tab\s*=\s*KO1KO2`)
)

// ProductCounts is the total/completed pair carried in the key=value
// notes channel of product-phase tasks.
type ProductCounts struct {
	Total     int
	Completed int
}

// Complete reports whether all products are done. A zero total is never
// complete.
func (c ProductCounts) Complete() bool {
	return c.Total > 0 && c.Completed >= c.Total
}

// EncodeProductCounts renders the key=value pair form.
func EncodeProductCounts(total, completed int) string {
	return fmt.Sprintf("total_products=%d; completed_products=%d", total, completed)
}

// DecodeProductCounts scrapes product counts out of a notes string with
// case-insensitive token matching. Missing tokens decode to 0.
func DecodeProductCounts(raw string) ProductCounts {
	return ProductCounts{
		Total:     scrapeInt(totalPattern, raw),
		Completed: scrapeInt(completedPattern, raw),
	}
}

// OriginTaskID returns the origin_task_id back-reference, or "" when the
// token is absent.
func OriginTaskID(raw string) string {
	m := originPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

// IsKOTask reports whether the notes carry the ko_tab=KO1KO2
// discriminator token.
func IsKOTask(raw string) bool {
	return koTabPattern.MatchString(raw)
}

func scrapeInt(re *regexp.Regexp, raw string) int {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
