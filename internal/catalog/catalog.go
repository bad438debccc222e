// Package catalog defines the salon's fixed service menu.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Service describes one bookable salon service.
type Service struct {
	Name            string
	DurationMinutes int
	PriceINR        int
}

// Duration returns the service length as a time.Duration.
func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// services is the fixed menu. Order matters for menu rendering.
var services = []Service{
	{Name: "Haircut (Men)", DurationMinutes: 45, PriceINR: 400},
	{Name: "Haircut (Women)", DurationMinutes: 60, PriceINR: 600},
	{Name: "Hair Coloring", DurationMinutes: 120, PriceINR: 2500},
	{Name: "Hair Spa", DurationMinutes: 90, PriceINR: 1500},
	{Name: "Manicure", DurationMinutes: 60, PriceINR: 800},
	{Name: "Pedicure", DurationMinutes: 60, PriceINR: 1000},
	{Name: "Facial (Basic)", DurationMinutes: 60, PriceINR: 1200},
	{Name: "Facial (Advanced)", DurationMinutes: 90, PriceINR: 2000},
	{Name: "Body Massage", DurationMinutes: 90, PriceINR: 2500},
	{Name: "Full Body Spa", DurationMinutes: 120, PriceINR: 3500},
	{Name: "Waxing (Full Body)", DurationMinutes: 90, PriceINR: 1800},
	{Name: "Threading & Eyebrows", DurationMinutes: 30, PriceINR: 200},
}

var byName = func() map[string]Service {
	m := make(map[string]Service, len(services))
	for _, s := range services {
		m[normalizeName(s.Name)] = s
	}
	return m
}()

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup resolves a service by name, case-insensitively.
func Lookup(name string) (Service, bool) {
	s, ok := byName[normalizeName(name)]
	return s, ok
}

// All returns the menu in display order.
func All() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// Names returns the canonical service names in display order.
func Names() []string {
	names := make([]string, len(services))
	for i, s := range services {
		names[i] = s.Name
	}
	return names
}

// NamesSorted returns the service names in lexical order. Used where a
// stable order independent of menu layout is needed (e.g. prompts).
func NamesSorted() []string {
	names := Names()
	sort.Strings(names)
	return names
}

// MenuTable renders the menu as a Markdown table for chat display.
func MenuTable() string {
	var b strings.Builder
	b.WriteString("| Service | Duration | Price (₹) |\n")
	b.WriteString("|---------|----------|-----------|\n")
	for _, s := range services {
		fmt.Fprintf(&b, "| %s | %d mins | ₹%d |\n", s.Name, s.DurationMinutes, s.PriceINR)
	}
	return b.String()
}
