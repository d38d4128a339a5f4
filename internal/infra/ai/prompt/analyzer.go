package prompt

import (
	"fmt"
	"strings"

	"github.com/belalnote2/InsightAssistant/internal/domain/analysis"
)

var categories = []string{
	analysis.CategoryNews,
	analysis.CategoryTechnology,
	analysis.CategorySports,
	analysis.CategoryPolitics,
	analysis.CategoryBusiness,
	analysis.CategoryScience,
	analysis.CategoryEntertainment,
	analysis.CategoryHealth,
	analysis.CategoryOther,
}

// Analysis builds the instruction prompt for one article. The backend is
// asked for a JSON object with exactly the keys summary, persons, category.
func Analysis(text string) string {
	return fmt.Sprintf(`Analyze the following article and provide:
1. A concise summary (2-3 sentences)
2. All person names mentioned (comma-separated)
3. The most relevant category (%s)

Return your response as a valid JSON object with these keys: "summary", "persons", "category"

Article:
%s

Response:`, strings.Join(categories, ", "), text)
}
