package insight

// Lexicon is the versioned rule data the extractor runs on: trigger words,
// validity rules, and per-category recommendation pools. Tuning happens here,
// not in extractor code.
type Lexicon struct {
	Version               string
	Stopwords             map[string]struct{}
	ActionTriggers        []string
	ProblemIndicators     []string
	ImprovementIndicators []string
	ActionVerbs           map[string]struct{}
	WeakOpeners           map[string]struct{}
	GenericFillers        []string
	Recommendations       map[string][]string
	GenericFallbacks      []string
}

func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Version:               "2025.1",
		Stopwords:             stopwords,
		ActionTriggers:        actionTriggers,
		ProblemIndicators:     problemIndicators,
		ImprovementIndicators: improvementIndicators,
		ActionVerbs:           actionVerbs,
		WeakOpeners:           weakOpeners,
		GenericFillers:        genericFillers,
		Recommendations:       recommendationsByCategory,
		GenericFallbacks:      genericFallbacks,
	}
}

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"of": {}, "at": {}, "by": {}, "for": {}, "with": {}, "about": {},
	"to": {}, "from": {}, "in": {}, "on": {}, "off": {}, "out": {},
	"up": {}, "down": {}, "is": {}, "am": {}, "are": {}, "was": {},
	"were": {}, "be": {}, "been": {}, "being": {}, "have": {}, "has": {},
	"had": {}, "do": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"can": {}, "could": {}, "should": {}, "shall": {}, "may": {},
	"might": {}, "must": {}, "i": {}, "me": {}, "my": {}, "we": {},
	"our": {}, "you": {}, "your": {}, "he": {}, "she": {}, "it": {},
	"its": {}, "they": {}, "them": {}, "their": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "there": {}, "here": {},
	"what": {}, "which": {}, "who": {}, "when": {}, "where": {},
	"why": {}, "how": {}, "all": {}, "any": {}, "some": {}, "no": {},
	"not": {}, "only": {}, "own": {}, "same": {}, "so": {}, "than": {},
	"too": {}, "very": {}, "just": {}, "more": {}, "most": {}, "other": {},
	"into": {}, "over": {}, "under": {}, "again": {}, "then": {},
	"once": {}, "as": {}, "also": {}, "get": {}, "got": {}, "lot": {},
	"really": {}, "quite": {}, "much": {}, "while": {}, "during": {},
	"because": {}, "through": {}, "between": {}, "each": {}, "both": {},
}

var actionTriggers = []string{
	"should", "could", "need", "needs", "must", "improve", "better",
	"implement", "recommend", "suggest", "require", "enhance",
}

var problemIndicators = []string{
	"problem", "issue", "concern", "challenge", "difficulty", "trouble",
	"lack", "poor", "bad", "wrong", "critical", "urgent",
}

var improvementIndicators = []string{
	"should", "could", "need", "improve", "enhance", "better",
	"increase", "optimize", "streamline",
}

var actionVerbs = map[string]struct{}{
	"implement": {}, "create": {}, "develop": {}, "establish": {},
	"provide": {}, "improve": {}, "review": {}, "conduct": {}, "set": {},
	"build": {}, "design": {}, "optimize": {}, "schedule": {},
	"organize": {}, "allocate": {}, "offer": {}, "use": {}, "adopt": {},
	"encourage": {}, "reward": {}, "train": {}, "celebrate": {},
	"integrate": {}, "ensure": {}, "support": {}, "address": {},
	"enhance": {}, "reduce": {}, "define": {}, "continue": {},
	"gather": {}, "focus": {},
}

var weakOpeners = map[string]struct{}{
	"i": {}, "we": {}, "you": {}, "they": {}, "he": {}, "she": {},
	"it": {}, "maybe": {}, "perhaps": {}, "possibly": {}, "probably": {},
	"hopefully": {}, "honestly": {}, "personally": {}, "things": {},
	"something": {}, "everything": {}, "nothing": {},
}

var genericFillers = []string{
	"things could be better",
	"keep up the good work",
	"nothing to add",
	"it is what it is",
	"no comment",
	"all good",
	"n/a",
}

var recommendationsByCategory = map[string][]string{
	"work_life_balance": {
		"Implement flexible working hours to accommodate different personal schedules",
		"Create clear boundaries between work and personal time to prevent burnout",
		"Offer remote work options to reduce commute stress and improve work-life balance",
		"Provide mental health resources and support for employees experiencing stress",
		"Organize team-building activities that respect personal time constraints",
	},
	"team_collaboration": {
		"Schedule regular brainstorming sessions to encourage idea sharing",
		"Implement a shared project management tool to improve task visibility",
		"Create cross-functional teams to tackle complex problems",
		"Establish clear communication channels for different types of information",
		"Organize team-building activities focused on improving collaboration skills",
	},
	"project_management": {
		"Implement agile methodologies to improve adaptability to changing requirements",
		"Create detailed project timelines with buffer periods for unexpected delays",
		"Establish clear roles and responsibilities for each team member",
		"Schedule regular status update meetings to keep everyone informed",
		"Develop a standardized documentation process for project requirements",
	},
	"communication": {
		"Create a communication plan that outlines channels for different types of information",
		"Schedule regular one-on-one meetings between team members and managers",
		"Implement a feedback system that encourages constructive criticism",
		"Use visual aids and diagrams to communicate complex ideas",
		"Establish guidelines for effective email and messaging communication",
	},
	"technical_skills": {
		"Provide access to online learning platforms for continuous skill development",
		"Organize regular knowledge-sharing sessions on technical topics",
		"Create a mentorship program pairing junior and senior developers",
		"Allocate time for experimentation with new technologies",
		"Support attendance at industry conferences and workshops",
	},
	"leadership": {
		"Implement transparent decision-making processes",
		"Provide leadership training for managers and team leads",
		"Create opportunities for emerging leaders to take on challenging projects",
		"Establish regular feedback sessions between leaders and team members",
		"Develop a leadership framework that emphasizes both results and people skills",
	},
	"personal_growth": {
		"Create individual development plans for each team member",
		"Provide budget for professional certifications and courses",
		"Implement a mentorship program for career guidance",
		"Schedule regular career development discussions",
		"Create opportunities for cross-training in different roles",
	},
	"innovation": {
		"Allocate time for innovation and experimentation",
		"Create a process for evaluating and implementing new ideas",
		"Reward innovative thinking and creative problem-solving",
		"Establish cross-functional innovation teams",
		"Provide resources for prototyping and testing new concepts",
	},
	"work_environment": {
		"Design collaborative spaces that facilitate teamwork",
		"Ensure ergonomic workstations for all employees",
		"Create quiet zones for focused work",
		"Implement environmental sustainability practices",
		"Provide amenities that improve workplace comfort and productivity",
	},
	"project_satisfaction": {
		"Implement a structured requirements gathering process",
		"Create clear documentation standards for all projects",
		"Establish regular client feedback sessions throughout the project lifecycle",
		"Develop a quality assurance process for deliverables",
		"Celebrate project milestones and successes",
	},
	"documentation": {
		"Implement a centralized knowledge management system",
		"Create standardized templates for different types of documentation",
		"Schedule regular documentation review sessions",
		"Train team members on effective documentation practices",
		"Integrate documentation into the development workflow",
	},
}

var genericFallbacks = []string{
	"Establish clear communication channels for different types of information",
	"Implement regular feedback sessions to identify areas for improvement",
	"Create standardized processes to ensure consistency and quality",
}
