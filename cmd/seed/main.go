package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"disha/internal/config"
	"disha/internal/model"
	"disha/internal/repository"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	questionRepo := repository.NewQuestionRepo(db)
	courseRepo := repository.NewCourseRepo(db)

	questions := generalQuestions()
	questions = append(questions, personalizedQuestions()...)
	questions = append(questions, subjectQuestions()...)
	for i := range questions {
		if err := questionRepo.Create(ctx, &questions[i]); err != nil {
			log.Fatalf("Failed to insert question: %v", err)
		}
	}

	courses := courseCatalog()
	for i := range courses {
		if err := courseRepo.Create(ctx, &courses[i]); err != nil {
			log.Fatalf("Failed to insert course: %v", err)
		}
	}

	fmt.Printf("Seeded %d questions and %d courses\n", len(questions), len(courses))
}

func generalQuestions() []model.Question {
	return []model.Question{
		{
			Tier: model.TierGeneral,
			Text: "A sequence goes 2, 6, 18, 54. What comes next?",
			Options: []model.Option{
				{Text: "162", Weights: map[string]float64{"analytical": 3, "math": 2}},
				{Text: "108", Weights: map[string]float64{"math": 1}},
				{Text: "I'd rather sketch the pattern", Weights: map[string]float64{"visual": 2}},
				{Text: "I'd ask a friend to solve it together", Weights: map[string]float64{"social": 2}},
			},
		},
		{
			Tier: model.TierGeneral,
			Text: "Which weekend activity sounds most appealing?",
			Options: []model.Option{
				{Text: "Solving a logic puzzle book", Weights: map[string]float64{"analytical": 3}},
				{Text: "Painting or photography", Weights: map[string]float64{"visual": 3, "creative": 1}},
				{Text: "Organizing a community event", Weights: map[string]float64{"social": 3}},
				{Text: "Building something from scrap parts", Weights: map[string]float64{"problem_solving": 3}},
			},
		},
		{
			Tier: model.TierGeneral,
			Text: "You are given a map of a town you have never visited. What do you do first?",
			Options: []model.Option{
				{Text: "Memorize landmarks and their relative positions", Weights: map[string]float64{"visual": 3, "spatial": 1}},
				{Text: "Plan the shortest route between two points", Weights: map[string]float64{"math": 2, "analytical": 2}},
				{Text: "Ask locals what is worth seeing", Weights: map[string]float64{"interpersonal": 3}},
				{Text: "Wander and improvise", Weights: map[string]float64{"creative": 2}},
			},
		},
		{
			Tier: model.TierGeneral,
			Text: "A shop offers 20% off, then 10% off the reduced price. What is the total discount?",
			Options: []model.Option{
				{Text: "28%", Weights: map[string]float64{"math": 3, "quantitative": 1}},
				{Text: "30%", Weights: map[string]float64{"math": 1}},
				{Text: "I'd estimate it roughly", Weights: map[string]float64{"problem_solving": 1}},
				{Text: "I'd check with the shopkeeper", Weights: map[string]float64{"social": 1}},
			},
		},
		{
			Tier: model.TierGeneral,
			Text: "Your team is stuck on a project. What is your instinct?",
			Options: []model.Option{
				{Text: "Break the problem into smaller pieces", Weights: map[string]float64{"analytical": 2, "problem_solving": 2}},
				{Text: "Try an unconventional approach", Weights: map[string]float64{"creative": 3}},
				{Text: "Get everyone talking until the blocker surfaces", Weights: map[string]float64{"interpersonal": 3}},
				{Text: "Diagram the whole system on a whiteboard", Weights: map[string]float64{"visual": 2, "spatial": 1}},
			},
		},
		{
			Tier: model.TierGeneral,
			Text: "Which school subject did you genuinely enjoy?",
			Options: []model.Option{
				{Text: "Mathematics", Weights: map[string]float64{"math": 3}},
				{Text: "Fine arts / technical drawing", Weights: map[string]float64{"visual": 3}},
				{Text: "Debate and languages", Weights: map[string]float64{"social": 2, "interpersonal": 1}},
				{Text: "Science practicals", Weights: map[string]float64{"problem_solving": 2, "analytical": 1}},
			},
		},
	}
}

// bankItem is one template for a domain's adaptive bank
type bankItem struct {
	text    string
	correct string // option text carrying the domain's max weight
	others  [3]string
}

func personalizedQuestions() []model.Question {
	banks := map[string][]bankItem{
		"analytical": {
			{"If all bloops are razzies and all razzies are luppies, are all bloops luppies?", "Yes, necessarily", [3]string{"No", "Only sometimes", "Cannot be determined"}},
			{"Which conclusion follows: every manager attends the meeting; Riya attends the meeting.", "No conclusion about Riya being a manager", [3]string{"Riya is a manager", "Riya is not a manager", "The meeting is mandatory"}},
			{"Find the odd one out: 3, 5, 11, 14, 17, 21", "14", [3]string{"3", "17", "21"}},
			{"A is taller than B, B is taller than C. Who is shortest?", "C", [3]string{"A", "B", "Cannot say"}},
			{"If the statement 'some cars are red' is false, what must be true?", "No cars are red", [3]string{"All cars are red", "Some cars are not red", "Most cars are red"}},
		},
		"visual": {
			{"A cube is painted and cut into 27 small cubes. How many have exactly two painted faces?", "12", [3]string{"8", "6", "24"}},
			{"Which net folds into a closed pyramid with a square base?", "Four triangles around one square", [3]string{"Five squares", "Three triangles", "Two squares and two triangles"}},
			{"After rotating the letter 'N' by 90 degrees clockwise, it resembles:", "A 'Z' lying on its side", [3]string{"An 'N' unchanged", "A 'W'", "An 'M'"}},
			{"A clock's mirror image shows 3:40. What is the real time?", "8:20", [3]string{"3:40", "9:20", "4:20"}},
			{"How many faces does a hexagonal prism have?", "8", [3]string{"6", "10", "12"}},
		},
		"math": {
			{"What is 15% of 240?", "36", [3]string{"24", "32", "40"}},
			{"If x + 7 = 3x - 5, then x equals:", "6", [3]string{"4", "5", "7"}},
			{"A train covers 180 km in 2.5 hours. Its average speed is:", "72 km/h", [3]string{"60 km/h", "75 km/h", "90 km/h"}},
			{"The ratio 3:4 scaled so the first term is 12 becomes:", "12:16", [3]string{"12:14", "12:15", "12:18"}},
			{"What is the next prime after 31?", "37", [3]string{"33", "35", "39"}},
		},
		"problem_solving": {
			{"You have a 3L and a 5L jug. How do you measure exactly 4L?", "Fill 5L, pour into 3L, empty 3L, transfer, refill 5L, top up 3L", [3]string{"It cannot be done", "Fill both and subtract", "Estimate by eye"}},
			{"A farmer must cross a river with a wolf, a goat, and a cabbage. What goes first?", "The goat", [3]string{"The wolf", "The cabbage", "Any of them"}},
			{"Your code fails only on Tuesdays. Your first step?", "Look for date-dependent logic", [3]string{"Rewrite the module", "Run it again and hope", "Blame the compiler"}},
			{"Two ropes each burn in 60 minutes unevenly. How do you measure 45 minutes?", "Light one at both ends and the other at one end", [3]string{"Cut one in half", "Burn both at one end", "It cannot be done"}},
			{"A lift is limited to 300 kg and you must move 500 kg of boxes. What matters most?", "Partitioning the boxes into valid loads", [3]string{"The lift's speed", "The building height", "The box colors"}},
		},
		"social": {
			{"A teammate repeatedly misses deadlines. Your best first move?", "Ask privately if something is blocking them", [3]string{"Report them immediately", "Take over their work silently", "Ignore it"}},
			{"In a heated group discussion, the most useful contribution is:", "Summarizing both positions fairly", [3]string{"Raising your voice", "Leaving the room", "Changing the topic"}},
			{"A junior is visibly nervous before a presentation. You:", "Help them rehearse and point out what's working", [3]string{"Tell them to toughen up", "Present in their place", "Say nothing"}},
			{"Two friends want you to take sides in their argument. You:", "Listen to both without judging", [3]string{"Pick the older friend", "Avoid both", "Start a vote"}},
			{"The sign of a productive meeting is:", "Everyone knows what they'll do next", [3]string{"It ran the longest", "Nobody disagreed", "It had the most slides"}},
		},
	}

	var questions []model.Question
	for domain, items := range banks {
		for _, item := range items {
			questions = append(questions, model.Question{
				Tier:   model.TierPersonalized,
				Domain: canonical(domain),
				Text:   item.text,
				Options: []model.Option{
					{Text: item.correct, Weights: map[string]float64{domain: 3}},
					{Text: item.others[0], Weights: map[string]float64{domain: 1}},
					{Text: item.others[1], Weights: map[string]float64{domain: 0}},
					{Text: item.others[2], Weights: map[string]float64{domain: 0}},
				},
			})
		}
	}
	return questions
}

func canonical(raw string) string {
	switch raw {
	case "analytical":
		return model.DomainAnalytical
	case "visual":
		return model.DomainVisual
	case "math":
		return model.DomainMath
	case "problem_solving":
		return model.DomainProblem
	case "social":
		return model.DomainSocial
	}
	return raw
}

func subjectQuestions() []model.Question {
	banks := map[string][]bankItem{
		model.SubjectPhysics: {
			{"A body in uniform circular motion has constant:", "Speed", [3]string{"Velocity", "Acceleration", "Displacement"}},
			{"The SI unit of power is:", "Watt", [3]string{"Joule", "Newton", "Pascal"}},
		},
		model.SubjectChemistry: {
			{"The pH of a neutral solution at 25°C is:", "7", [3]string{"0", "14", "1"}},
			{"Which bond involves shared electron pairs?", "Covalent", [3]string{"Ionic", "Metallic", "Hydrogen"}},
		},
		model.SubjectBiology: {
			{"The powerhouse of the cell is the:", "Mitochondrion", [3]string{"Nucleus", "Ribosome", "Golgi body"}},
			{"DNA replication is described as:", "Semi-conservative", [3]string{"Conservative", "Dispersive", "Random"}},
		},
		model.SubjectCS: {
			{"Binary search on a sorted array of n elements takes:", "O(log n)", [3]string{"O(n)", "O(n log n)", "O(1)"}},
			{"Which data structure is LIFO?", "Stack", [3]string{"Queue", "Heap", "Graph"}},
		},
		model.SubjectEconomics: {
			{"When price rises, quantity demanded typically:", "Falls", [3]string{"Rises", "Stays constant", "Doubles"}},
			{"GDP measures:", "Value of final goods and services produced", [3]string{"Government debt", "Gold reserves", "Population growth"}},
		},
		model.SubjectArts: {
			{"Primary colors in pigment are:", "Red, yellow, blue", [3]string{"Red, green, blue", "Black, white, grey", "Orange, purple, green"}},
			{"Perspective drawing creates an illusion of:", "Depth", [3]string{"Sound", "Motion", "Temperature"}},
		},
	}

	var questions []model.Question
	for subject, items := range banks {
		for _, item := range items {
			questions = append(questions, model.Question{
				Tier:    model.TierSubject,
				Subject: subject,
				Text:    item.text,
				Options: []model.Option{
					{Text: item.correct, Weights: map[string]float64{subject: 3}},
					{Text: item.others[0], Weights: map[string]float64{subject: 1}},
					{Text: item.others[1], Weights: map[string]float64{subject: 0}},
					{Text: item.others[2], Weights: map[string]float64{subject: 0}},
				},
			})
		}
	}
	return questions
}

func courseCatalog() []model.Course {
	return []model.Course{
		{
			Name:            "B.Tech Computer Science",
			Stream:          "Engineering",
			Level:           "Undergraduate",
			Duration:        "4 years",
			SkillLabels:     []string{model.DomainAnalytical, model.DomainMath, model.DomainProblem},
			SubjectInterest: model.SubjectCS,
			ExampleJobRoles: []string{"Software Engineer", "Data Analyst", "Systems Architect"},
			AvailableInJK:   true,
		},
		{
			Name:            "B.Sc Mathematics",
			Stream:          "Science",
			Level:           "Undergraduate",
			Duration:        "3 years",
			SkillLabels:     []string{model.DomainMath, model.DomainAnalytical},
			ExampleJobRoles: []string{"Statistician", "Actuary", "Teacher"},
			AvailableInJK:   true,
		},
		{
			Name:            "Bachelor of Architecture",
			Stream:          "Design",
			Level:           "Undergraduate",
			Duration:        "5 years",
			SkillLabels:     []string{model.DomainVisual, model.DomainProblem, model.DomainMath},
			SubjectInterest: model.SubjectPhysics,
			ExampleJobRoles: []string{"Architect", "Urban Planner"},
			AvailableInJK:   true,
		},
		{
			Name:            "Bachelor of Fine Arts",
			Stream:          "Arts",
			Level:           "Undergraduate",
			Duration:        "4 years",
			SkillLabels:     []string{model.DomainVisual, model.DomainProblem},
			SubjectInterest: model.SubjectArts,
			ExampleJobRoles: []string{"Illustrator", "Art Director"},
			AvailableInJK:   false,
		},
		{
			Name:            "MBBS",
			Stream:          "Medical",
			Level:           "Undergraduate",
			Duration:        "5.5 years",
			SkillLabels:     []string{model.DomainAnalytical, model.DomainSocial, model.DomainProblem},
			SubjectInterest: model.SubjectBiology,
			ExampleJobRoles: []string{"Physician", "Surgeon"},
			AvailableInJK:   true,
		},
		{
			Name:            "BA Economics",
			Stream:          "Humanities",
			Level:           "Undergraduate",
			Duration:        "3 years",
			SkillLabels:     []string{model.DomainMath, model.DomainAnalytical, model.DomainSocial},
			SubjectInterest: model.SubjectEconomics,
			ExampleJobRoles: []string{"Economist", "Policy Analyst", "Banker"},
			AvailableInJK:   true,
		},
		{
			Name:            "BA Psychology",
			Stream:          "Humanities",
			Level:           "Undergraduate",
			Duration:        "3 years",
			SkillLabels:     []string{model.DomainSocial, model.DomainAnalytical},
			SubjectInterest: model.SubjectBiology,
			ExampleJobRoles: []string{"Counselor", "HR Specialist"},
			AvailableInJK:   true,
		},
		{
			Name:            "B.Des Product Design",
			Stream:          "Design",
			Level:           "Undergraduate",
			Duration:        "4 years",
			SkillLabels:     []string{model.DomainVisual, model.DomainProblem, model.DomainSocial},
			SubjectInterest: model.SubjectArts,
			ExampleJobRoles: []string{"Product Designer", "UX Designer"},
			AvailableInJK:   false,
		},
	}
}
