package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Every month of the year is identical and fully worked",
	"Employees receive their fringe benefits in the year: service bonus, severance and severance interest enter the annual gross",
	"Monthly withholding uses Procedure 1 and is rounded to the nearest 1,000",
	"Monthly and annual caps are applied separately; the annual tax need not equal twelve withholdings",
	"Contractor contributions are paid on 40% of gross income",
	"VAT is charged to the client and reported separately; it never reduces the net income of the worker",
	"SIMPLE tax is assessed on annual turnover and shown monthly as one twelfth",
}
