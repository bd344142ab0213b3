package reports

// Warehouse SQL for the dashboard tabs. Named parameters are bound with
// sqlx; every date window defaults to the official US launch
// (2022-06-06) and can be overridden per request.

// Acquisition: player distribution by launch phase, platform and channel
const PlayerDistributionQuery = `
WITH installs AS (
  SELECT
    user_id,
    install_date::date AS install_date,
    platform,
    LEFT(channel_country, 2) AS country,
    SPLIT_PART(channel_country, '-', 2) AS channel,
    CASE
      WHEN install_date::date < :launch_date THEN 'Soft Launch'
      ELSE 'Official Launch'
    END AS launch_phase
  FROM players
  WHERE install_date IS NOT NULL
    AND install_date::date >= :start_date
)
SELECT
  launch_phase,
  platform,
  country,
  channel,
  DATE_TRUNC('week', install_date)::date AS install_week,
  COUNT(DISTINCT user_id) AS players
FROM installs
GROUP BY 1, 2, 3, 4, 5
ORDER BY install_week, launch_phase, platform
`

// Engagement: daily active users and level throughput
const DailyEngagementQuery = `
SELECT
  date,
  COUNT(DISTINCT user_id) AS daily_active_users,
  SUM(levels_played) AS total_levels_played,
  SUM(levels_completed) AS total_levels_completed
FROM activity
WHERE date IS NOT NULL AND date >= :start_date
GROUP BY date
ORDER BY date
`

// Engagement: share of each day's actives who return the next day
const DailyReturnRateQuery = `
WITH user_daily_activity AS (
  SELECT
    user_id,
    date,
    LAG(date) OVER (PARTITION BY user_id ORDER BY date) AS prev_date
  FROM activity
  WHERE date IS NOT NULL AND date >= :start_date AND user_id IS NOT NULL
),
daily_returns AS (
  SELECT
    date,
    COUNT(DISTINCT user_id) AS total_active_users,
    COUNT(DISTINCT CASE WHEN date - prev_date = 1 THEN user_id END) AS returned_next_day
  FROM user_daily_activity
  GROUP BY date
)
SELECT
  date,
  total_active_users,
  returned_next_day,
  ROUND(returned_next_day * 100.0 / NULLIF(total_active_users, 0), 2) AS daily_return_rate_pct
FROM daily_returns
ORDER BY date
`

// Engagement: players active in days 14-20 after install, split by
// launch phase
const TwoWeekRetentionQuery = `
WITH user_installs AS (
  SELECT
    user_id,
    install_date::date AS install_date,
    CASE
      WHEN install_date::date < :launch_date THEN 'Soft Launch'
      ELSE 'Official Launch'
    END AS launch_phase
  FROM players
  WHERE install_date IS NOT NULL
    AND install_date::date >= :start_date
),
two_week_retention AS (
  SELECT
    ui.user_id,
    ui.launch_phase,
    MAX(CASE WHEN a.date - ui.install_date BETWEEN 14 AND 20 THEN 1 ELSE 0 END) AS retained
  FROM user_installs ui
  LEFT JOIN activity a ON a.user_id = ui.user_id
  GROUP BY ui.user_id, ui.launch_phase
)
SELECT
  launch_phase,
  COUNT(*) AS cohort_size,
  SUM(retained) AS retained_users,
  ROUND(SUM(retained) * 100.0 / NULLIF(COUNT(*), 0), 2) AS retention_pct
FROM two_week_retention
GROUP BY launch_phase
ORDER BY launch_phase
`

// Engagement: how far players progress through the level curve
const ProgressionMilestoneQuery = `
WITH player_progress AS (
  SELECT
    user_id,
    SUM(levels_completed) AS levels_completed
  FROM activity
  WHERE date >= :start_date AND user_id IS NOT NULL
  GROUP BY user_id
)
SELECT
  CASE
    WHEN levels_completed >= 200 THEN '200+'
    WHEN levels_completed >= 100 THEN '100-199'
    WHEN levels_completed >= 50  THEN '50-99'
    WHEN levels_completed >= 20  THEN '20-49'
    WHEN levels_completed >= 5   THEN '5-19'
    ELSE '0-4'
  END AS milestone,
  COUNT(*) AS players
FROM player_progress
GROUP BY 1
ORDER BY MIN(levels_completed)
`

// Monetization: daily revenue split by source with ARPDAU
const RevenueBySourceQuery = `
WITH filtered_revenue AS (
  SELECT
    event_date AS revenue_date,
    revenue_type,
    user_id,
    transaction_value
  FROM revenues
  WHERE event_date >= :start_date
    AND transaction_value IS NOT NULL
),
activity_data AS (
  SELECT date, COUNT(DISTINCT user_id) AS dau
  FROM activity
  WHERE date >= :start_date
  GROUP BY date
),
daily_metrics AS (
  SELECT
    revenue_date,
    SUM(CASE WHEN revenue_type = 'iap' THEN transaction_value ELSE 0 END) AS iap_revenue,
    SUM(CASE WHEN revenue_type = 'ad' THEN transaction_value ELSE 0 END) AS ad_revenue,
    SUM(transaction_value) AS total_revenue,
    COUNT(DISTINCT CASE WHEN revenue_type = 'iap' THEN user_id END) AS total_spenders
  FROM filtered_revenue
  GROUP BY revenue_date
)
SELECT
  d.revenue_date,
  d.iap_revenue,
  d.ad_revenue,
  d.total_revenue,
  d.total_spenders,
  d.iap_revenue / NULLIF(d.total_spenders, 0) AS iap_per_spender,
  a.dau,
  d.iap_revenue / NULLIF(a.dau, 0) AS iap_arpdau,
  d.ad_revenue / NULLIF(a.dau, 0) AS ad_arpdau,
  d.total_revenue / NULLIF(a.dau, 0) AS total_arpdau
FROM daily_metrics d
LEFT JOIN activity_data a ON d.revenue_date = a.date
ORDER BY d.revenue_date
`

// Monetization: transactions far above the average for their type. The
// multiplier is a parameter (the analyst default flags 100x outliers).
const AnomalyTransactionsQuery = `
WITH transaction_stats AS (
  SELECT
    revenue_type,
    AVG(transaction_value) AS avg_transaction
  FROM revenues
  WHERE transaction_value > 0 AND event_date >= :start_date
  GROUP BY revenue_type
)
SELECT
  t.event_date,
  t.user_id,
  t.revenue_type,
  t.transaction_value,
  s.avg_transaction,
  ROUND((t.transaction_value / s.avg_transaction)::numeric, 1) AS times_avg
FROM revenues t
JOIN transaction_stats s ON t.revenue_type = s.revenue_type
WHERE t.transaction_value > s.avg_transaction * :threshold
  AND t.event_date >= :start_date
ORDER BY t.transaction_value DESC, t.event_date
`

// LTV: cumulative day 1-20 revenue per player, bucketed into spender
// segments
const RevenueSegmentationQuery = `
WITH player_revenue AS (
  SELECT
    p.user_id,
    COALESCE(SUM(r.transaction_value), 0) AS revenue_day1_20
  FROM players p
  LEFT JOIN revenues r
    ON r.user_id = p.user_id
    AND r.event_date - p.install_date::date BETWEEN 0 AND 20
  WHERE p.install_date::date >= :start_date
  GROUP BY p.user_id
)
SELECT
  CASE
    WHEN revenue_day1_20 = 0 THEN 'non-spender'
    WHEN revenue_day1_20 < 1 THEN 'minnow'
    WHEN revenue_day1_20 < 10 THEN 'dolphin'
    ELSE 'whale'
  END AS segment,
  COUNT(*) AS players,
  SUM(revenue_day1_20) AS segment_revenue,
  AVG(revenue_day1_20) AS avg_revenue_per_player
FROM player_revenue
GROUP BY 1
ORDER BY segment_revenue DESC
`

// LTV: day-N retention curve over the first 20 days
const RetentionRateQuery = `
WITH user_installs AS (
  SELECT user_id, install_date::date AS install_date
  FROM players
  WHERE install_date IS NOT NULL AND install_date::date >= :start_date
),
day_offsets AS (
  SELECT generate_series(1, 20) AS day_n
),
retained AS (
  SELECT
    o.day_n,
    COUNT(DISTINCT ui.user_id) AS cohort_size,
    COUNT(DISTINCT CASE WHEN a.date = ui.install_date + o.day_n THEN ui.user_id END) AS retained_users
  FROM day_offsets o
  CROSS JOIN user_installs ui
  LEFT JOIN activity a ON a.user_id = ui.user_id
  GROUP BY o.day_n
)
SELECT
  day_n,
  cohort_size,
  retained_users,
  ROUND(retained_users * 100.0 / NULLIF(cohort_size, 0), 2) AS retention_pct
FROM retained
ORDER BY day_n
`
