// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package text

import (
	"context"
	"fmt"
	"io"
	"time"

	"gitlab.com/tozd/go/errors"
)

// 📅 YearToken is replaced with the four-digit year in every boilerplate.
// The match is literal and case-sensitive.
const YearToken = "$(Year)"

// 🗓️ YearRule returns the replacement rule that stamps the year of now.
func YearRule(now time.Time) ReplacementRule {
	return ReplacementRule{
		FromText: YearToken,
		ToText:   fmt.Sprintf("%04d", now.Year()),
	}
}

// 📝 ExpandBoilerplate reads a boilerplate template and substitutes every
// YearToken with the local year of now, using replacer. No other text is
// altered.
func ExpandBoilerplate(ctx context.Context, replacer TextReplacer, content io.Reader, now time.Time) (string, error) {
	rules := []ReplacementRule{YearRule(now)}
	if err := replacer.ValidateRules(rules); err != nil {
		return "", errors.Errorf("expanding boilerplate: %w", err)
	}

	result, err := replacer.ReplaceText(ctx, content, rules)
	if err != nil {
		return "", errors.Errorf("expanding boilerplate: %w", err)
	}
	return string(result.ModifiedContent), nil
}
