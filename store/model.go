package store

type LocalRouteStep struct {
	Program      string `gorm:"type:varchar(48);not null"`
	Pool         string `gorm:"type:varchar(48);not null"`
	TokenIn      string `gorm:"type:varchar(48);not null"`
	AmountIn     uint64 `gorm:"type:bigint(20);not null"`
	SlotIn       uint64 `gorm:"type:bigint(20);not null"`
	TokenOut     string `gorm:"type:varchar(48);not null"`
	AmountOut    uint64 `gorm:"type:bigint(20);not null"`
	SlotOut      uint64 `gorm:"type:bigint(20);not null"`
	FeeAmount    uint64 `gorm:"type:bigint(20);not null"`
	LocalRouteId uint64 `gorm:"type:bigint(20);not null"`
}

type LocalRoute struct {
	Id              uint64            `gorm:"primaryKey;type:bigint(20);not null"`
	TokenIn         string            `gorm:"type:varchar(48);not null"`
	AmountIn        uint64            `gorm:"type:bigint(20);not null"`
	TokenOut        string            `gorm:"type:varchar(48);not null"`
	AmountOut       uint64            `gorm:"type:bigint(20);not null"`
	Hops            int               `gorm:"type:bigint(20);not null"`
	Exact           bool              `gorm:"not null"`
	LocalRouteSteps []*LocalRouteStep `gorm:"foreignKey:LocalRouteId;references:Id"`
}

type CommittedRouteStep struct {
	Program          string `gorm:"type:varchar(48);not null"`
	Pool             string `gorm:"type:varchar(48);not null"`
	TokenIn          string `gorm:"type:varchar(48);not null"`
	AmountIn         uint64 `gorm:"type:bigint(20);not null"`
	TokenOut         string `gorm:"type:varchar(48);not null"`
	AmountOut        uint64 `gorm:"type:bigint(20);not null"`
	CommittedRouteId uint64 `gorm:"type:bigint(20);not null"`
}

type CommittedRoute struct {
	Id                  uint64                `gorm:"primaryKey;type:bigint(20);not null"`
	StateAccount        string                `gorm:"type:varchar(48);not null"`
	AmountIn            uint64                `gorm:"type:bigint(20);not null"`
	MinAmountOut        uint64                `gorm:"type:bigint(20);not null"`
	CommittedRouteSteps []*CommittedRouteStep `gorm:"foreignKey:CommittedRouteId;references:Id"`
}

type ExecutedRoute struct {
	Id             uint64 `gorm:"primaryKey;type:bigint(20);not null"`
	ExecuteId      int    `gorm:"primaryKey;type:bigint(20);not null"`
	SendTime       uint64 `gorm:"type:bigint(20);not null"`
	ResponseTime   uint64 `gorm:"type:bigint(20);not null"`
	FinishTime     uint64 `gorm:"type:bigint(20);not null"`
	ExecuteCounter int    `gorm:"type:bigint(20);not null"`
	Signature      string `gorm:"type:varchar(120);not null"`
}
