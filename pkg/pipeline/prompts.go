package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"intent-search-be/pkg/store"
)

func buildIntentPrompt(query string) string {
	var prompt strings.Builder

	prompt.WriteString("You are an expert in classifying e-commerce search queries by intent.\n")
	prompt.WriteString("Categorize the query into ONE of these intents:\n")
	prompt.WriteString("- PRODUCT_DISCOVERY: General browsing or exploring product categories\n")
	prompt.WriteString("- SPECIFIC_PRODUCT: Looking for a specific product\n")
	prompt.WriteString("- ATTRIBUTE_SEARCH: Searching by specific product attributes or features\n")
	prompt.WriteString("- PROBLEM_SOLUTION: Describing a problem seeking products that solve it\n")
	prompt.WriteString("- COMPARISON: Comparing multiple products or types\n")
	prompt.WriteString("- PRICE_BASED: Search primarily focused on price considerations\n")
	prompt.WriteString("- AVAILABILITY: Checking if something is in stock or available\n\n")
	prompt.WriteString("Return ONLY the intent category name, nothing else.\n\n")
	prompt.WriteString("Query: ")
	prompt.WriteString(query)

	return prompt.String()
}

func buildExtractionPrompt(query string, intent string) string {
	var prompt strings.Builder

	prompt.WriteString("Extract search parameters from this e-commerce query.\n")
	prompt.WriteString(fmt.Sprintf("The query intent is: %s\n\n", intent))
	prompt.WriteString("Based on this intent, extract a JSON object with these possible keys (only include if present):\n")
	prompt.WriteString("- product_type: The type or category of product\n")
	prompt.WriteString("- specific_product: Exact product name if searching for specific item\n")
	prompt.WriteString("- attributes: Dictionary of attributes like color, size, material, etc. (values as lists of strings)\n")
	prompt.WriteString("- price_range: Dictionary with min and/or max if mentioned\n")
	prompt.WriteString("- brands: List of brands mentioned\n")
	prompt.WriteString("- problems: List of problems user wants to solve with product\n")
	prompt.WriteString("- comparison_items: List of items being compared\n\n")
	prompt.WriteString("Return ONLY valid JSON, no other text.\n\n")
	prompt.WriteString("Query: ")
	prompt.WriteString(query)

	return prompt.String()
}

func buildEnhancementPrompt(query string, intent string, parameters Parameters) string {
	var prompt strings.Builder

	prompt.WriteString("You are an expert in enhancing e-commerce search queries.\n")
	prompt.WriteString(fmt.Sprintf("Original query: %s\n", query))
	prompt.WriteString(fmt.Sprintf("Detected intent: %s\n", intent))
	prompt.WriteString(fmt.Sprintf("Extracted parameters: %s\n\n", marshalForPrompt(parameters)))
	prompt.WriteString("Create an enhanced search query that:\n")
	prompt.WriteString("1. Expands with relevant synonyms\n")
	prompt.WriteString("2. Adds implicit product attributes based on intent\n")
	prompt.WriteString("3. Clarifies ambiguous terms\n\n")
	prompt.WriteString("Return ONLY the enhanced query text, nothing else.")

	return prompt.String()
}

func buildRankingPrompt(query string, intent string, parameters Parameters, candidates []store.Product) string {
	var prompt strings.Builder

	prompt.WriteString("You are an expert in ranking e-commerce search results based on user intent.\n")
	prompt.WriteString(fmt.Sprintf("User query: %s\n", query))
	prompt.WriteString(fmt.Sprintf("Detected intent: %s\n", intent))
	prompt.WriteString(fmt.Sprintf("Search parameters: %s\n\n", marshalForPrompt(parameters)))
	prompt.WriteString("Re-rank these product results in order of relevance to the user's intent.\n")
	prompt.WriteString("For each product, explain briefly why it matches or doesn't match the intent.\n\n")
	prompt.WriteString("Return a JSON array with objects containing:\n")
	prompt.WriteString("- product_id: The product ID\n")
	prompt.WriteString("- rank: New position (1 being best match)\n")
	prompt.WriteString("- reason: Brief explanation of ranking decision\n\n")
	prompt.WriteString("Return ONLY valid JSON, no other text.\n\n")
	prompt.WriteString("Results to rank: ")
	prompt.WriteString(marshalForPrompt(candidates))

	return prompt.String()
}

func buildResponsePrompt(query string, intent string, parameters Parameters, topResults []store.RankedProduct) string {
	var prompt strings.Builder

	prompt.WriteString("Create a helpful response for an e-commerce search.\n")
	prompt.WriteString(fmt.Sprintf("User query: %s\n", query))
	prompt.WriteString(fmt.Sprintf("Detected intent: %s\n", intent))
	prompt.WriteString(fmt.Sprintf("Search parameters: %s\n", marshalForPrompt(parameters)))
	prompt.WriteString(fmt.Sprintf("Top 3 results: %s\n\n", marshalForPrompt(topResults)))
	prompt.WriteString("Craft a conversational but concise response that:\n")
	prompt.WriteString("1. Acknowledges their search intent\n")
	prompt.WriteString("2. Highlights the top results and why they match\n")
	prompt.WriteString("3. For SPECIFIC_PRODUCT intent, directly address if we found the exact product\n")
	prompt.WriteString("4. For PROBLEM_SOLUTION intent, explain how products solve their problem\n\n")
	prompt.WriteString("Keep focus on addressing their needs without being overly verbose.\n")
	prompt.WriteString("Ensure the response is factual and based only on the results provided.")

	return prompt.String()
}

func buildNoResultsPrompt(query string, intent string, parameters Parameters) string {
	var prompt strings.Builder

	prompt.WriteString("Create a helpful response for an e-commerce search that returned no results.\n")
	prompt.WriteString(fmt.Sprintf("User query: %s\n", query))
	prompt.WriteString(fmt.Sprintf("Detected intent: %s\n", intent))
	prompt.WriteString(fmt.Sprintf("Search parameters: %s\n\n", marshalForPrompt(parameters)))
	prompt.WriteString("Your response should:\n")
	prompt.WriteString("1. Acknowledge that we couldn't find exactly what they're looking for\n")
	prompt.WriteString("2. Suggest 2-3 alternative search approaches\n")
	prompt.WriteString("3. If possible, recommend related product categories\n")
	prompt.WriteString("4. Be concise and helpful\n\n")
	prompt.WriteString("The tone should be helpful and solution-oriented.")

	return prompt.String()
}

func buildQualityIssuesPrompt(query string, intent string, qualityIssues []string, parameters Parameters, topResults []store.RankedProduct) string {
	var prompt strings.Builder

	prompt.WriteString("Create a response for an e-commerce search where we found results,\n")
	prompt.WriteString("but they may not perfectly match what the user was looking for.\n\n")
	prompt.WriteString(fmt.Sprintf("User query: %s\n", query))
	prompt.WriteString(fmt.Sprintf("Detected intent: %s\n", intent))
	prompt.WriteString(fmt.Sprintf("Quality issues: %s\n", strings.Join(qualityIssues, ", ")))
	prompt.WriteString(fmt.Sprintf("Search parameters: %s\n", marshalForPrompt(parameters)))
	prompt.WriteString(fmt.Sprintf("Top results: %s\n\n", marshalForPrompt(topResults)))
	prompt.WriteString("Your response should:\n")
	prompt.WriteString("1. Be honest about limitations in what we found\n")
	prompt.WriteString("2. Present the best matches we did find\n")
	prompt.WriteString("3. Acknowledge the specific mismatch (price, exact product, etc.)\n")
	prompt.WriteString("4. Suggest refinements or alternatives\n")
	prompt.WriteString("5. Be helpful and conversational\n\n")
	prompt.WriteString("Do not apologize excessively - just be helpful and direct.")

	return prompt.String()
}

func buildCleaningPrompt(response string) string {
	var prompt strings.Builder

	prompt.WriteString("Rewrite this e-commerce search response to remove any:\n")
	prompt.WriteString("- Apologies or \"I'm sorry\" statements\n")
	prompt.WriteString("- References to being an AI or limitations\n")
	prompt.WriteString("- Statements about not having access to information\n\n")
	prompt.WriteString("Keep all the product recommendations and helpful content.\n")
	prompt.WriteString("Maintain a confident, helpful tone focused on addressing the customer need.\n\n")
	prompt.WriteString("Response to rewrite:\n")
	prompt.WriteString(response)

	return prompt.String()
}

func marshalForPrompt(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
