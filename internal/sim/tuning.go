package sim

// Gameplay tuning constants. Distances are in meters, times in seconds,
// speeds in meters per second.
const (
	RinkLength       = 60.0
	RinkWidth        = 30.0
	BlueLineFraction = 1.0 / 3.0 // zone depth as a fraction of rink length
	GoalLineInset    = 3.0       // goal line distance from the end boards
	GoalHalfWidth    = 1.5
	GoalHeight       = 1.2

	PuckRadius   = 0.15
	PlayerRadius = 0.6
	StickLength  = 1.4

	// Possession / stick handling
	MagnetRange           = 1.8
	MaxPossessionDistance = 2.4
	PullStrength          = 22.0 // acceleration toward the stick tip
	MatchStrength         = 0.35 // velocity-matching fraction per tick
	PickupCooldown        = 0.35
	LoserCooldownFactor   = 1.5 // previous owner excluded this much longer

	// Shooting / passing
	ShotMultiplier  = 24.0
	MaxShotSpeed    = 32.0
	ShotLift        = 1.6
	SpinFactor      = 0.8 // Y angular velocity per unit of shot speed
	PassMultiplier  = 14.0
	PassLift        = 0.6
	PassVarianceDeg = 18.0 // max deviation at accuracy 0
	ShotCooldown    = 0.6
	PassCooldown    = 0.25

	// Rules
	IcingThreshold = 1.0 // distance from the far goal line that completes icing

	// Faceoffs
	FaceoffReadyDelay     = 0.5
	FaceoffCountdownSecs  = 3.0
	FaceoffSettleDelay    = 0.3
	FaceoffWinWindow      = 3.0
	FaceoffDropHeight     = 1.5
	FaceoffDropJitter     = 1.2 // max horizontal speed imparted at the drop
	FaceoffCenterOffset   = 1.0
	FaceoffCircleRadius   = 4.5
	FaceoffDotNeutralX    = 2.0 // neutral dots sit this far inside the blue line
	FaceoffDotZoneInset   = 7.0 // zone dots sit this far inside the goal line
	FaceoffDotHalfSpacing = 7.0 // dot offset across the rink

	// Skating
	SkateAccel      = 18.0
	SkateFriction   = 0.88 // per-tick velocity retention at 60 TPS
	BaseSkateSpeed  = 7.5
	GoalieSpeed     = 4.0
	StaminaMax      = 100.0
	StaminaDrain    = 1.8  // per second on ice
	StaminaRegen    = 6.0  // per second on the bench
	StaminaTired    = 20.0 // below this a line change is requested
	StaminaRested   = 80.0 // bench players above this are eligible to come on
	TiredSpeedScale = 0.6  // speed multiplier at zero stamina

	// Puck physics
	Gravity          = 9.81
	IceFriction      = 0.991 // per-tick velocity retention at 60 TPS
	BoardRestitution = 0.65
	IceRestitution   = 0.3
	SpinDamping      = 0.97

	// AI shooting range and pass evaluation
	ShootingRange    = 12.0
	PassRange        = 18.0
	PassLaneWidth    = 1.2 // opponents closer than this to the lane block it
	DefenseExcursion = 5.0 // how far past center a defenseman may carry

	// Checking
	CheckRange      = 1.4  // body-check reach against the puck carrier
	StealRatePerSec = 0.9  // probability per second a check strips the puck
	TripShare       = 0.08 // fraction of failed-contact checks that draw a trip

	// Match
	GoalSlowMotionScale = 0.3
	CelebrationLength   = 3.0
	TouchRadius         = 1.0
)

// MaxTouchHistory bounds the puck touch ring used for assist credit and
// icing bookkeeping.
const MaxTouchHistory = 3

// AI difficulty bounds. Difficulty 0 maps to the Easy value, 1 to Hard,
// linearly in between.
const (
	ReactionTimeEasy = 0.9
	ReactionTimeHard = 0.25

	ChaseSpeedEasy = 5.5
	ChaseSpeedHard = 8.5

	ShootAccuracyEasy = 0.55
	ShootAccuracyHard = 0.95

	PassChanceEasy = 0.3
	PassChanceHard = 0.75
)
