package question

// Stored field names shared by every candidate index backend. Filter
// expressions reference these keys; backends map them to their own columns.
const (
	FieldID             = "id"
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldType           = "type"
	FieldLanguage       = "language"
	FieldCategory       = "category"
	FieldDifficulty     = "difficulty"
	FieldOrganizationID = "organization_id"
	FieldIsGlobal       = "is_global"
	FieldCreatedBy      = "created_by"
	FieldCreatedAt      = "created_at"
	FieldEntryFunction  = "entry_function_name"
	FieldCodeTemplate   = "code_template"
	FieldCorrectAnswer  = "correct_answer"
	FieldOptions        = "options"
)

// ProjectionFields lists the fields a candidate lookup returns.
var ProjectionFields = []string{
	FieldID, FieldTitle, FieldDescription, FieldType, FieldLanguage, FieldCategory,
	FieldDifficulty, FieldOrganizationID, FieldIsGlobal, FieldCreatedBy, FieldCreatedAt,
	FieldEntryFunction, FieldCodeTemplate, FieldCorrectAnswer, FieldOptions,
}

// BoolValue renders a boolean the way keyword fields store it.
func BoolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
