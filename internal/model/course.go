package model

// Course is a static catalog entry, read-only to the engine
type Course struct {
	ID              string   `json:"id" bson:"_id,omitempty"`
	Name            string   `json:"name" bson:"name"`
	Stream          string   `json:"stream" bson:"stream"`
	Level           string   `json:"level" bson:"level"`
	Duration        string   `json:"duration" bson:"duration"`
	SkillLabels     []string `json:"skillLabels" bson:"skillLabels"`
	SubjectInterest string   `json:"subjectInterest,omitempty" bson:"subjectInterest,omitempty"`
	ExampleJobRoles []string `json:"exampleJobRoles,omitempty" bson:"exampleJobRoles,omitempty"`
	AvailableInJK   bool     `json:"availableInJk" bson:"availableInJk"`
}
