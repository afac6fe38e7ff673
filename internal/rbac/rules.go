package rbac

// Default policy. Instructors own the exam pipeline; students only take exams.
var RolePermissions = map[string][]string{
	"student": {
		"exam:view",
		"exam:submit",
	},
	"instructor": {
		"exam:*",
		"library:*",
		"results:*",
	},
}
