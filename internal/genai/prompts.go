package genai

import (
	"fmt"
	"strings"
)

// Token ceilings per operation. Long-form generation gets the larger
// budgets; structured analyses stay small.
const (
	analyzeJobMaxTokens     = 2000
	generateResumeMaxTokens = 4000
	coverLetterMaxTokens    = 2000
	interviewPrepMaxTokens  = 2000
	mealPlanMaxTokens       = 4000
	recipeMaxTokens         = 2000
	optimizeListMaxTokens   = 2000
	matchCouponsMaxTokens   = 2000
	nutritionMaxTokens      = 1500
)

// JobFields carries the posting fields a job-side prompt interpolates.
// Pointer fields render as "Not specified" when nil.
type JobFields struct {
	Title       string
	Company     string
	Location    *string
	SalaryMin   *float64
	SalaryMax   *float64
	Description *string
}

// ResumeFields carries the resume fields the generation prompts use.
type ResumeFields struct {
	Content        string
	Skills         *string
	Experience     *string
	Education      *string
	Certifications *string
}

func orNone(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func salaryBound(v *float64) string {
	if v == nil {
		return "Not specified"
	}
	return fmt.Sprintf("$%.0f", *v)
}

func analyzeJobPrompt(job JobFields) string {
	return fmt.Sprintf(`Analyze this job posting and provide:
1. Overall fit score (0-100)
2. Key requirements match
3. Missing qualifications
4. Red flags (if any)
5. Growth opportunities
6. Salary competitiveness

Job Details:
Title: %s
Company: %s
Location: %s
Salary: %s - %s

Description:
%s

Please provide a concise analysis in JSON format with the following structure:
{
  "fitScore": <number 0-100>,
  "summary": "<brief overall assessment>",
  "strengths": ["<strength 1>", "<strength 2>", ...],
  "concerns": ["<concern 1>", "<concern 2>", ...],
  "missingQualifications": ["<qualification 1>", ...],
  "recommendations": ["<recommendation 1>", ...],
  "salaryAssessment": "<assessment of salary competitiveness>"
}`,
		job.Title, job.Company, orNone(job.Location, "Not specified"),
		salaryBound(job.SalaryMin), salaryBound(job.SalaryMax),
		orNone(job.Description, ""))
}

func generateResumePrompt(job JobFields, resume ResumeFields) string {
	return fmt.Sprintf(`Generate a tailored resume for this job posting based on the master resume provided.

Job Posting:
Title: %s
Company: %s
Description: %s

Master Resume:
%s

Skills: %s
Experience: %s
Education: %s
Certifications: %s

Please generate:
1. A tailored resume that emphasizes relevant experience and skills
2. A compelling cover letter
3. Key talking points for interviews

Format the response as JSON:
{
  "tailoredResume": "<formatted resume text>",
  "coverLetter": "<personalized cover letter>",
  "interviewTalkingPoints": ["<point 1>", "<point 2>", ...]
}`,
		job.Title, job.Company, orNone(job.Description, ""),
		resume.Content, orNone(resume.Skills, ""), orNone(resume.Experience, ""),
		orNone(resume.Education, ""), orNone(resume.Certifications, ""))
}

func coverLetterPrompt(job JobFields, resume ResumeFields) string {
	return fmt.Sprintf(`Generate a compelling cover letter for this job application.

Job Details:
Title: %s
Company: %s
Location: %s
Description: %s

Applicant Background:
%s

Skills: %s

Please write a professional, engaging cover letter that:
1. Expresses genuine interest in the role
2. Highlights relevant experience and skills
3. Shows knowledge of the company
4. Explains why the candidate is a great fit
5. Includes a strong closing

Keep it concise (3-4 paragraphs, under 400 words).`,
		job.Title, job.Company, orNone(job.Location, "Not specified"),
		orNone(job.Description, ""), orNone(resume.Experience, ""),
		orNone(resume.Skills, ""))
}

func interviewPrepPrompt(job JobFields) string {
	return fmt.Sprintf(`Prepare interview guidance for this job:

Title: %s
Company: %s
Description: %s

Provide:
1. Likely interview questions (5-7)
2. Suggested answers framework
3. Questions to ask the interviewer (3-5)
4. Research topics about the company
5. Red flags to watch for

Format as JSON:
{
  "questions": [{"question": "...", "answerFramework": "..."}],
  "questionsToAsk": ["..."],
  "researchTopics": ["..."],
  "redFlags": ["..."]
}`,
		job.Title, job.Company, orNone(job.Description, ""))
}

// MealPlanRequest carries the household constraints a plan prompt uses.
type MealPlanRequest struct {
	Days                int
	People              int
	DietaryRestrictions string
	Allergies           string
	PreferredCuisines   string
	DislikedIngredients string
	BudgetPerWeek       string
	MealTypes           []string
}

func mealPlanPrompt(req MealPlanRequest) string {
	mealTypes := "Breakfast, Lunch, Dinner"
	if len(req.MealTypes) > 0 {
		mealTypes = strings.Join(req.MealTypes, ", ")
	}
	fallbackOr := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return fmt.Sprintf(`Generate a %d-day meal plan for %d people.

Preferences:
- Dietary restrictions: %s
- Allergies: %s
- Preferred cuisines: %s
- Disliked ingredients: %s
- Budget per week: $%s
- Meal types needed: %s

Requirements:
1. Variety - no repeated meals within %d days
2. Balanced nutrition across the week
3. Mix of quick weeknight meals (30 min or less) and weekend meals (can be longer)
4. Consider batch cooking opportunities
5. Seasonal ingredients when possible

Please provide a meal plan in JSON format:
{
  "weeklyPlan": [
    {
      "day": "Monday",
      "date": "2024-01-01",
      "breakfast": { "name": "...", "cookTime": 15, "prepTime": 5 },
      "lunch": { "name": "...", "cookTime": 20, "prepTime": 10 },
      "dinner": { "name": "...", "cookTime": 30, "prepTime": 15 }
    },
    ...
  ],
  "shoppingList": {
    "produce": ["item 1", "item 2"],
    "proteins": ["item 1"],
    "dairy": ["item 1"],
    "pantry": ["item 1"],
    "other": ["item 1"]
  },
  "batchCookingTips": ["tip 1", "tip 2"],
  "estimatedWeeklyCost": 120
}`,
		req.Days, req.People,
		fallbackOr(req.DietaryRestrictions, "None"),
		fallbackOr(req.Allergies, "None"),
		fallbackOr(req.PreferredCuisines, "Any"),
		fallbackOr(req.DislikedIngredients, "None"),
		fallbackOr(req.BudgetPerWeek, "Flexible"),
		mealTypes, req.Days)
}

func recipeFromIngredientsPrompt(ingredients []string) string {
	return fmt.Sprintf(`Create a recipe using these available ingredients:

%s

Generate a complete recipe in JSON format:
{
  "name": "Recipe Name",
  "description": "Brief description",
  "servings": 4,
  "prepTime": 10,
  "cookTime": 20,
  "difficulty": "Easy",
  "ingredients": [
    { "item": "ingredient 1", "amount": "1 cup", "fromAvailable": true },
    { "item": "ingredient 2", "amount": "2 tbsp", "fromAvailable": false }
  ],
  "instructions": [
    "Step 1",
    "Step 2"
  ],
  "tips": ["tip 1", "tip 2"],
  "nutrition": {
    "calories": 350,
    "protein": "25g",
    "carbs": "30g",
    "fat": "12g"
  }
}`, strings.Join(ingredients, "\n"))
}

// ListedItem is one shopping list line as the optimization prompts see it.
type ListedItem struct {
	Name     string
	Quantity string
	Unit     string
}

func optimizeShoppingListPrompt(items []ListedItem, store string) string {
	if store == "" {
		store = "a typical grocery store"
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s (%s %s)", it.Name, it.Quantity, it.Unit))
	}
	return fmt.Sprintf(`Optimize this shopping list for %s:

%s

Please provide:
1. Organized by store aisle/department
2. Grouped similar items
3. Suggest generic/store brands for cost savings
4. Flag items that might be on sale this time of year
5. Suggest bulk buying opportunities

Format as JSON:
{
  "organizedList": {
    "Produce": ["item 1", "item 2"],
    "Meat/Seafood": ["item 1"],
    "Dairy": ["item 1"],
    "Pantry": ["item 1"],
    "Frozen": ["item 1"],
    "Other": ["item 1"]
  },
  "costSavingTips": ["tip 1", "tip 2"],
  "seasonalItems": ["item 1"],
  "bulkOpportunities": ["item 1"]
}`, store, strings.Join(lines, "\n"))
}

// CouponLine is one coupon as the matching prompt sees it.
type CouponLine struct {
	Product       string
	DiscountType  string
	DiscountValue float64
}

func matchCouponsPrompt(items []string, coupons []CouponLine) string {
	couponLines := make([]string, 0, len(coupons))
	for _, c := range coupons {
		couponLines = append(couponLines, fmt.Sprintf("%s: %s %g", c.Product, c.DiscountType, c.DiscountValue))
	}
	return fmt.Sprintf(`Match these shopping items with available coupons:

Shopping Items:
%s

Available Coupons:
%s

Provide matches with confidence scores in JSON:
{
  "matches": [
    {
      "itemName": "shopping item",
      "couponProduct": "coupon product name",
      "matchConfidence": 0.95,
      "potentialSavings": 2.50,
      "reason": "why this matches"
    }
  ],
  "totalPotentialSavings": 15.50,
  "unusedCoupons": ["coupon 1", "coupon 2"]
}`, strings.Join(items, ", "), strings.Join(couponLines, "\n"))
}

// MealLine is one scheduled meal as the nutrition prompt sees it.
type MealLine struct {
	MealType   string
	RecipeName string
}

func analyzeNutritionPrompt(meals []MealLine) string {
	lines := make([]string, 0, len(meals))
	for _, m := range meals {
		lines = append(lines, fmt.Sprintf("%s: %s", m.MealType, m.RecipeName))
	}
	return fmt.Sprintf(`Analyze the nutritional balance of this day's meals:

%s

Provide analysis in JSON format:
{
  "overallRating": "Good/Fair/Needs Improvement",
  "strengths": ["strength 1", "strength 2"],
  "concerns": ["concern 1"],
  "recommendations": ["recommendation 1"],
  "macroBalance": {
    "protein": "adequate/low/high",
    "carbs": "adequate/low/high",
    "fats": "adequate/low/high"
  },
  "micronutrients": {
    "vitamins": ["vitamin A: good", "vitamin C: excellent"],
    "minerals": ["iron: adequate", "calcium: low"]
  },
  "suggestions": ["Add more vegetables", "Include a calcium source"]
}`, strings.Join(lines, "\n"))
}
