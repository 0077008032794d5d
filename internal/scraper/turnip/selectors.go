package turnip

// All DOM assumptions about turnip.exchange live here.
const (
	IslandsPath = "/islands"
	IslandPath  = "/island/"

	// islands list
	SelListingBlock = "div.note[data-turnip-code]"
	AttrCode        = "data-turnip-code"
	SelHeading      = "h2"
	SelFruitImage   = "img"
	SelPriceBox     = "div.flex"
	SelPrice        = "p"

	PriceSuffix  = "Bells"
	QueuePrefix  = "Waiting:"
	QueueDivider = "/"

	// island detail / join flow
	SelDetailMarker  = "div.island-detail, #island-detail"
	SelNoticeButton  = "button:has-text('I understand'), button.notice-accept"
	SelJoinButton    = "button:has-text('Join this queue'), button.join-queue"
	SelIdentityField = "input[name='name'], input#name"
	SelConfirmButton = "button:has-text('Confirm'), button[type='submit']"
)
