package routeguard

// Route path constants
// All admin application routes are defined here to ensure consistency and
// prevent typos
const (
	RouteLogin = "/login"

	RouteArticles          = "/articles"
	RouteArticleCategories = "/article-categories"
	RouteCity              = "/city"
	RouteCompanyReviews    = "/company-reviews"
	RouteConsultations     = "/consultations"
	RouteContactUsMessages = "/contact-us-messages"
	RouteEstateUnits       = "/estate-units"
	RouteFaQuestions       = "/fa-questions"
	RouteProjects          = "/projects"
	RouteStage             = "/stage"
	RouteTermsConditions   = "/terms-and-conditions"
	RouteUnitType          = "/unit-type"
	RouteUsers             = "/users"
	RouteProfile           = "/profile"

	RouteConsultationRequests = "/consultation-requests"
	RouteUnitRequests         = "/unit-requests"
	RouteUnitRequestsSales    = "/unit-requests/salesstaff"
	RouteEstateUnitDetails    = "/estate-units/details"
)
