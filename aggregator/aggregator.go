/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package aggregator

import (
	"context"
	"strings"

	"dirpx.dev/logplugin"
	"dirpx.dev/logplugin/apis"
	"dirpx.dev/logplugin/perror"
)

var _ apis.Plugin = (*Classifier)(nil)

// Option configures a Classifier.
type Option func(*Classifier)

// WithRules replaces the classification table. Substrings are lowercased and
// rules with an empty substring are dropped, since they would match every
// message and shadow all later rules.
func WithRules(rules ...Rule) Option {
	return func(c *Classifier) { c.rules = normalizeRules(rules) }
}

// WithFallback sets the category for messages no rule matches.
func WithFallback(cat logplugin.Category) Option {
	return func(c *Classifier) { c.fallback = cat }
}

// Classifier is the error-aggregator plugin.
type Classifier struct {
	rules    []Rule
	fallback logplugin.Category
}

// New returns a Classifier using DefaultRules unless overridden.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		rules:    normalizeRules(DefaultRules),
		fallback: DefaultFallback,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rules returns a copy of the active classification table.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Describe returns the constant plugin description.
func (c *Classifier) Describe() logplugin.PluginInfo {
	return logplugin.PluginInfo{
		Name:                logplugin.Name,
		Version:             logplugin.Version,
		Description:         logplugin.Description,
		SupportedParameters: []string{logplugin.ParamMinCount, logplugin.ParamTimeWindow},
	}
}

// Classify returns the category of the first rule whose substring occurs in
// the lowercased message, or the fallback.
func (c *Classifier) Classify(message string) logplugin.Category {
	lower := strings.ToLower(message)
	for _, r := range c.rules {
		if strings.Contains(lower, r.Substring) {
			return r.Category
		}
	}
	return c.fallback
}

// Count classifies every ERROR entry, in order, and returns the unfiltered
// per-category counts. Entries with any other level, including "error", are
// skipped.
func (c *Classifier) Count(entries []logplugin.Entry) logplugin.Statistics {
	stats := make(logplugin.Statistics)
	for _, e := range entries {
		if e.Level != logplugin.LevelError {
			continue
		}
		stats[c.Classify(e.Message)]++
	}
	return stats
}

// Filter returns the categories of stats whose count is at least minCount.
// Categories below the threshold are dropped, not zeroed.
func Filter(stats logplugin.Statistics, minCount int64) logplugin.Statistics {
	out := make(logplugin.Statistics, len(stats))
	for cat, n := range stats {
		if n >= minCount {
			out[cat] = n
		}
	}
	return out
}

// Aggregate counts ERROR entries per category and keeps those seen at least
// min_count times. The only failure is an InvalidParameter error for a
// malformed min_count.
//
// time_window is a recognized parameter but does not affect the result:
// entries carry no timestamp semantics the window could be applied to yet.
func (c *Classifier) Aggregate(entries []logplugin.Entry, params logplugin.Parameters) (logplugin.Statistics, error) {
	minCount, err := ParseMinCount(params)
	if err != nil {
		return nil, err
	}
	return Filter(c.Count(entries), minCount), nil
}

// Process implements apis.Plugin. It refuses work for a request whose context
// is already done and otherwise delegates to Aggregate.
func (c *Classifier) Process(ctx context.Context, entries []logplugin.Entry, params logplugin.Parameters) (logplugin.Statistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, perror.FromContext(err)
	}
	return c.Aggregate(entries, params)
}

func normalizeRules(rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		s := strings.ToLower(r.Substring)
		if s == "" {
			continue
		}
		out = append(out, Rule{Substring: s, Category: r.Category})
	}
	return out
}
